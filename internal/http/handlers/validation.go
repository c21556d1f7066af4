package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on Gin's validator:
//
//	reclamation_status: one of EN_ATTENTE, EN_COURS, TRAITEE, REJETEE
//
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validatorv10.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("reclamation_status", func(fl validatorv10.FieldLevel) bool {
			return domain.Status(fl.Field().String()).Valid()
		})
	})
}
