package discovery

// Represents a single active display output, as reported by one enumeration call
type Output struct {

	// The position of the owning adapter in enumeration order (0-based)
	AdapterIndex int `json:"adapter_index" yaml:"adapter_index" mapstructure:"adapter_index"`

	// The position of this output within its adapter's enumeration order (0-based)
	OutputIndex int `json:"output_index" yaml:"output_index" mapstructure:"output_index"`

	// The platform-assigned device path (e.g. "\\.\DISPLAY1")
	DeviceName string `json:"device_name" yaml:"device_name" mapstructure:"device_name"`

	// The horizontal pixel extent of the output's desktop rectangle
	Width int `json:"width" yaml:"width" mapstructure:"width"`

	// The vertical pixel extent of the output's desktop rectangle
	Height int `json:"height" yaml:"height" mapstructure:"height"`

	// Specifies whether the output hosts the system's primary desktop
	Primary bool `json:"primary" yaml:"primary" mapstructure:"primary"`
}
