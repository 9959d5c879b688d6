package validator

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TransferActionTag validates a manager's answer to a transfer message.
const TransferActionTag = "transfer_action"

var registerOnce sync.Once

// RegisterMarketValidations installs the custom tags used by request
// bodies on gin's validator. Safe to call more than once.
func RegisterMarketValidations() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation(TransferActionTag, validateTransferAction)
	})
	return err
}

func validateTransferAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "accept", "reject", "counter":
		return true
	}
	return false
}

func ParseError(err error) map[string]string {
	errors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			errors[fe.Field()] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}
	} else if err != nil {
		errors["error"] = err.Error()
	}
	return errors
}
