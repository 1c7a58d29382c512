package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// ProviderName represents the summarization backend.
	ProviderName string
)

// All output modes supported.
const (
	TextOut  OutputMode = "text" // default
	JSONOut  OutputMode = "json"
	CSVOut   OutputMode = "csv"
	TableOut OutputMode = "table"
)

// All summarization providers supported.
const (
	DashScopeProvider ProviderName = "dashscope" // default
	OpenAIProvider    ProviderName = "openai"
)

// Messages printed for the well-known terminal states of a run.
const (
	NoCommitsMessage = "no commits found"
	FallbackSummary  = "summary request failed"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:  {},
	JSONOut:  {},
	CSVOut:   {},
	TableOut: {},
}

// ValidProviders lists all valid summarization providers.
var ValidProviders = map[ProviderName]struct{}{
	DashScopeProvider: {},
	OpenAIProvider:    {},
}
