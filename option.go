package awsmsg

// WithErrorHandler returns an option to replace the handler that receives the
// outcome of best-effort calls, such as the SMS attribute step.
func WithErrorHandler(h ErrorHandler) ErrorHandlerOption {
	return ErrorHandlerOption{h}
}

// ErrorHandlerOption is an option type for setting the error handler of a NotificationService.
type ErrorHandlerOption struct {
	handler ErrorHandler
}

func (o ErrorHandlerOption) applyNotificationService(s *NotificationService) {
	s.errHandler = o.handler
}
