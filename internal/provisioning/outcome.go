package provisioning

// Outcome is the result of an orchestrator operation. Remote failures are
// always folded into an Outcome; operations never return an error.
type Outcome struct {
	Success bool
	Message string
}

func succeeded(msg string) Outcome {
	return Outcome{Success: true, Message: msg}
}

func failed(msg string) Outcome {
	return Outcome{Message: msg}
}
