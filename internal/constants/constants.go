package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ExtendedHTTPTimeout is used for container uploads.
	ExtendedHTTPTimeout = 5 * time.Minute
)

// Retry limits. Retries only happen when a caller opts in.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Data API paths.
const (
	// APIBasePath prefixes every Data API route.
	APIBasePath = "/fmi/data/v1"

	// APIPathProductInfo reports server product information.
	APIPathProductInfo = APIBasePath + "/productInfo"

	// APIPathValidateSession checks whether the bearer token is still live.
	APIPathValidateSession = APIBasePath + "/validateSession"
)

// Request headers and values.
const (
	// HeaderAuthorization carries bearer, basic or FMID credentials.
	HeaderAuthorization = "Authorization"

	// HeaderAccessToken echoes the session token on login responses.
	HeaderAccessToken = "X-FM-Data-Access-Token"

	// FMIDScheme is the authorization scheme for claim-ticket logins.
	FMIDScheme = "FMID "

	// DefaultUserAgent identifies this client.
	DefaultUserAgent = "fmdata-client-go"
)

// Container upload defaults.
const (
	// UploadFormField is the multipart field name the server reads.
	UploadFormField = "upload"

	// DefaultUploadFileName is used when the caller gives none.
	DefaultUploadFileName = "upload"

	// DefaultContainerRepetition addresses the first repetition.
	DefaultContainerRepetition = 1
)

// Format constants.
const (
	// FormatJSON selects JSON output.
	FormatJSON = "json"

	// FormatYAML selects YAML output.
	FormatYAML = "yaml"

	// FormatTable selects table output.
	FormatTable = "table"
)

// Boolean string constants.
const (
	// BooleanTrue is the string form the Data API uses for flags.
	BooleanTrue = "true"
)
