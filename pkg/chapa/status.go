package chapa

// Transaction status vocabulary Chapa reports through webhooks and the
// verify endpoint.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusFail    = "fail"
	StatusPending = "pending"
)
