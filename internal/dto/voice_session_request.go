package dto

// TranscriptRequest carries the recognized speech. A null utterance means no
// speech engine was available.
type TranscriptRequest struct {
	Utterance *string `json:"utterance"`
}

type CaptureErrorRequest struct {
	Error string `json:"error"`
}

type PaymentMethodRequest struct {
	Method string `json:"method"`
}

type PaymentRequest struct {
	Success *bool  `json:"success"`
	Reason  string `json:"reason,omitempty"`
}
