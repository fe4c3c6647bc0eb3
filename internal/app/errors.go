package app

import "errors"

var (
	// ErrInvalidCredentials is shown verbatim to the login form and must not
	// reveal whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Validation errors, caught before any storage or database call.
	ErrTitleRequired         = errors.New("title is required")
	ErrImageRequired         = errors.New("an image file is required")
	ErrUnsupportedImageType  = errors.New("unsupported image type")
	ErrContentRequired       = errors.New("content is required")
	ErrContactFieldsRequired = errors.New("name, email and message are required")
	ErrEmailPasswordRequired = errors.New("email and password are required")

	// Not-found errors.
	ErrEntryNotFound   = errors.New("journal entry not found")
	ErrMessageNotFound = errors.New("message not found")

	// Step errors for the showcase upload workflow, so a failure names the
	// step that broke.
	ErrImageUploadFailed  = errors.New("image upload failed")
	ErrShowcaseSaveFailed = errors.New("saving showcase item failed")
)

// IsValidation reports whether err is a pre-flight validation failure.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrTitleRequired,
		ErrImageRequired,
		ErrUnsupportedImageType,
		ErrContentRequired,
		ErrContactFieldsRequired,
		ErrEmailPasswordRequired,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
