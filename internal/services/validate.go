package services

import (
	"errors"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// TypeCodeOther is the reclamation type whose requests must carry a motif.
const TypeCodeOther = "AUTRE"

// CreateInput is the agent-supplied part of a new reclamation. The bureau
// and the type code are never taken from the caller.
type CreateInput struct {
	TypeID         uint   `validate:"required"`
	NumeroCompte   string `validate:"required,max=64"`
	NomClient      string `validate:"required,max=255"`
	AncienneValeur string
	NouvelleValeur string
	Motif          string

	// typeCode is the stored code of TypeID, filled in by Create.
	typeCode string
}

var validate = newValidator()

func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(createInputStructValidation, CreateInput{})
	return v
}

// createInputStructValidation requires a motif for the AUTRE type.
func createInputStructValidation(sl validatorv10.StructLevel) {
	in := sl.Current().Interface().(CreateInput)
	if strings.EqualFold(strings.TrimSpace(in.typeCode), TypeCodeOther) && strings.TrimSpace(in.Motif) == "" {
		sl.ReportError(in.Motif, "motif", "Motif", "required_for_autre", "")
	}
}

var fieldNames = map[string]string{
	"TypeID":       "type_id",
	"NumeroCompte": "numero_compte",
	"NomClient":    "nom_client",
	"Motif":        "motif",
}

// validateCreate trims in and runs struct validation, mapping failures to
// a *ValidationError keyed by JSON field name. unknownType adds a type_id
// failure for a TypeID with no stored type.
func validateCreate(in *CreateInput, unknownType bool) error {
	in.NumeroCompte = strings.TrimSpace(in.NumeroCompte)
	in.NomClient = strings.TrimSpace(in.NomClient)
	in.Motif = strings.TrimSpace(in.Motif)

	err := validate.Struct(*in)
	if err == nil && !unknownType {
		return nil
	}
	var ve validatorv10.ValidationErrors
	if err != nil && !errors.As(err, &ve) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(ve)+1)}
	if unknownType {
		out.Fields["type_id"] = "unknown"
	}
	for _, fe := range ve {
		name := fieldNames[fe.StructField()]
		if name == "" {
			name = strings.ToLower(fe.StructField())
		}
		out.Fields[name] = fe.Tag()
	}
	return out
}
