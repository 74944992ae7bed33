package awsmsg

import "errors"

// Configuration errors. All of them are returned synchronously by the factory
// or a service constructor, never from an operation.
var (
	// ErrMissingConfig is returned when no configuration is given.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrMissingRegion is returned when the configuration has no region.
	ErrMissingRegion = errors.New("missing region in configuration")
	// ErrMissingEnv is returned when the email service is built without an environment.
	ErrMissingEnv = errors.New("missing environment in configuration")
	// ErrMissingDevAddresses is returned when the email service is built for
	// development without a development address list.
	ErrMissingDevAddresses = errors.New("missing development email addresses in configuration")
	// ErrUnknownService is returned by the factory for a service kind it does not know.
	ErrUnknownService = errors.New("unknown service")
)

// Env identifies the environment the email service runs in. It drives the
// outbound address and subject remapping.
type Env string

// Known environments. Any other value fails email sends with ErrInvalidEnv.
const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
)

// Config carries the settings shared by all services. It is read-only once
// passed to a constructor; services copy the fields they need as per-call
// defaults.
type Config struct {
	// Region the AWS clients are built for. Required.
	Region string
	// QueueURL is the default queue for QueueService operations.
	QueueURL string
	// VisibilityTimeout is the default visibility timeout, in seconds, for received messages.
	VisibilityTimeout int32
	// ARNPath is the default topic, platform application or sending authorization ARN.
	ARNPath string
	// DefaultSender is the default source address for outbound email.
	DefaultSender string
	// Env selects the email remapping behavior.
	Env Env
	// DevEmailAddresses replaces all outbound recipients in development.
	DevEmailAddresses []string
}

// Validate checks the configuration preconditions common to every service.
func (c *Config) Validate() error {
	if c == nil {
		return ErrMissingConfig
	}
	if c.Region == "" {
		return ErrMissingRegion
	}

	return nil
}
