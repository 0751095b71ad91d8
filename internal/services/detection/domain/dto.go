package domain

// TextInput is the request body for ad hoc text detection. Model is
// advisory: the shared classifier handle serves every request and the
// result reports the model that actually ran
type TextInput struct {
	Text  string `json:"text" validate:"required,min=1"`
	Model string `json:"model,omitempty" validate:"omitempty,max=200"`
}
