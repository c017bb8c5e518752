package checkavailability

// Output is the positive result: the person exists in the directory.
// PhoneNumber is a pointer so an unknown number serializes as null, which is
// what the voice platform expects.
type Output struct {
	Found       bool    `json:"found"`
	FullName    string  `json:"fullName"`
	Available   bool    `json:"available"`
	Status      string  `json:"status"`
	PhoneNumber *string `json:"phoneNumber"`
}

// NotFoundOutput is the normal negative result. It is not an error: the
// assistant relays the message to the caller.
type NotFoundOutput struct {
	Found   bool   `json:"found"`
	Message string `json:"message"`
}
