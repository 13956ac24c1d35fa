package model

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var notificationTypes = map[string]bool{
	NotificationTypePost:         true,
	NotificationTypeReply:        true,
	NotificationTypeLike:         true,
	NotificationTypeVerification: true,
	NotificationTypeReport:       true,
	NotificationTypeSystem:       true,
	NotificationTypeUser:         true,
	NotificationTypeAdmin:        true,
}

var reportReasons = map[string]bool{
	ReportReasonHarassment:     true,
	ReportReasonSelfHarm:       true,
	ReportReasonSpam:           true,
	ReportReasonMisinformation: true,
	ReportReasonOffensive:      true,
	ReportReasonOther:          true,
}

// RegisterValidations installs the custom enum validators used by the
// binding tags above. Must run before the router starts handling requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("notificationtype", func(fl validator.FieldLevel) bool {
		return notificationTypes[fl.Field().String()]
	}); err != nil {
		return err
	}

	return v.RegisterValidation("reportreason", func(fl validator.FieldLevel) bool {
		return reportReasons[fl.Field().String()]
	})
}
