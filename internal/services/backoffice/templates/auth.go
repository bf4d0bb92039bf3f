package templates

// LoginView drives the sign-in form.
type LoginView struct {
	Email       string
	CallbackURL string
	Error       string
}

// RegisterView drives the sign-up form.
type RegisterView struct {
	Name  string
	Email string
	Error string
}

// ForgotPasswordView drives the reset request form. Sent swaps the form for
// the confirmation message.
type ForgotPasswordView struct {
	Email string
	Sent  bool
	Error string
}

// ResetPasswordView drives the new password form. Invalid replaces the form
// with an expired-link message.
type ResetPasswordView struct {
	Token   string
	Error   string
	Invalid bool
}

type authLink struct {
	href  string
	label string
}
