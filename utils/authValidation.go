package utils

import (
	"strings"

	"MedicApp/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// SignUpInput is the signup form.
type SignUpInput struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role"`
}

// Normalize trims the free-text fields and lowercases the email.
func (in *SignUpInput) Normalize() {
	in.Email = NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateSignUp checks the form has what the account and profile rows need.
func ValidateSignUp(in SignUpInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		// bcrypt only hashes the first 72 bytes and refuses longer input.
		validation.Field(&in.Password, validation.Required.Error("password cannot be blank"), validation.Length(1, 72)),
		validation.Field(&in.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Role, validation.Required, validation.In(models.RoleDoctor, models.RolePatient).Error("role must be doctor or patient")),
	)
}

// ValidateLogin requires both credentials.
func ValidateLogin(email, password string) error {
	return validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.EmailFormat),
		"password": validation.Validate(password, validation.Required.Error("password cannot be blank")),
	}.Filter()
}

// ValidateBooking checks the booking form. The date must be an ISO 8601 timestamp.
func ValidateBooking(doctorID, appointmentDate string) error {
	return validation.Errors{
		"doctor_id":        validation.Validate(doctorID, validation.Required),
		"appointment_date": validation.Validate(appointmentDate, validation.Required, validation.By(rfc3339)),
	}.Filter()
}

// ValidateStatus accepts the three appointment statuses.
func ValidateStatus(status models.AppointmentStatus) error {
	return validation.Validate(status,
		validation.Required,
		validation.In(models.StatusScheduled, models.StatusCancelled, models.StatusCompleted).
			Error("status must be one of scheduled, cancelled, completed"),
	)
}

// ValidateBlog requires a title. Content may be empty.
func ValidateBlog(title string) error {
	return validation.Errors{
		"title": validation.Validate(title, validation.Required, validation.Length(1, 200)),
	}.Filter()
}

func rfc3339(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := models.ParseTimestamp(s); err != nil {
		return validation.NewError("validation_rfc3339", "must be an ISO 8601 date-time")
	}
	return nil
}
