package httputils

// RequestError is the body of every failed API request
type RequestError struct {
	Error string `json:"error"`
}

// FlashMessage is returned by actions without a payload
type FlashMessage struct {
	FlashMessage string `json:"flash_message"`
}

// ValidationError reports the form field that was rejected
type ValidationError struct {
	Error string `json:"error"`
	Field string `json:"field"`
}
