package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type errorHandle func(error)

var (
	parseErrorHandleFunc errorHandle
)

// SetParseErrorHandle set the error handle function used for cli parsing flags.
// An error handle example:
//
//	cli.SetParseErrorHandle(func(err error) {
//		fmt.Println(err)
//		os.Exit(3)
//	})
func SetParseErrorHandle(f errorHandle) {
	parseErrorHandleFunc = f
}

// GetStringFlagValue get the string value for the given StringFlag from the local flags
// of the cobra command.
func GetStringFlagValue(cmd *cobra.Command, flag StringFlag) string {
	return getStringFlagValue(flagSetOf(cmd, flag.Name), flag)
}

func getStringFlagValue(fs *pflag.FlagSet, flag StringFlag) string {
	val, err := fs.GetString(flag.Name)
	if err != nil {
		handleParseError(err)
		return ""
	}
	return val
}

// GetBoolFlagValue get the bool value for the given BoolFlag from the flags of the
// cobra command.
func GetBoolFlagValue(cmd *cobra.Command, flag BoolFlag) bool {
	val, err := flagSetOf(cmd, flag.Name).GetBool(flag.Name)
	if err != nil {
		handleParseError(err)
		return false
	}
	return val
}

// GetIntFlagValue get the int value for the given IntFlag from the flags of the
// cobra command.
func GetIntFlagValue(cmd *cobra.Command, flag IntFlag) int {
	val, err := flagSetOf(cmd, flag.Name).GetInt(flag.Name)
	if err != nil {
		handleParseError(err)
		return 0
	}
	return val
}

// GetInt64FlagValue get the int64 value for the given Int64Flag from the flags of the
// cobra command.
func GetInt64FlagValue(cmd *cobra.Command, flag Int64Flag) int64 {
	val, err := flagSetOf(cmd, flag.Name).GetInt64(flag.Name)
	if err != nil {
		handleParseError(err)
		return 0
	}
	return val
}

// GetFloat64FlagValue get the float64 value for the given Float64Flag from the flags of
// the cobra command.
func GetFloat64FlagValue(cmd *cobra.Command, flag Float64Flag) float64 {
	val, err := flagSetOf(cmd, flag.Name).GetFloat64(flag.Name)
	if err != nil {
		handleParseError(err)
		return 0
	}
	return val
}

// GetStringSliceFlagValue get the string slice value for the given StringSliceFlag from
// the flags of the cobra command.
func GetStringSliceFlagValue(cmd *cobra.Command, flag StringSliceFlag) []string {
	val, err := flagSetOf(cmd, flag.Name).GetStringSlice(flag.Name)
	if err != nil {
		handleParseError(err)
		return nil
	}
	return val
}

// IsFlagChanged returns whether the flag has been changed in command
func IsFlagChanged(cmd *cobra.Command, flag Flag) bool {
	name := getFlagName(flag)
	return flagSetOf(cmd, name).Changed(name)
}

// HasFlagsChanged returns whether any of the flags is set by user in the command
func HasFlagsChanged(cmd *cobra.Command, flags []Flag) bool {
	for _, flag := range flags {
		if IsFlagChanged(cmd, flag) {
			return true
		}
	}
	return false
}

// flagSetOf returns the local flag set when it knows the flag, and the inherited
// persistent flags otherwise. Sub commands read root flags this way.
func flagSetOf(cmd *cobra.Command, name string) *pflag.FlagSet {
	if fs := cmd.Flags(); fs.Lookup(name) != nil {
		return fs
	}
	return cmd.InheritedFlags()
}

func handleParseError(err error) {
	if parseErrorHandleFunc != nil {
		parseErrorHandleFunc(err)
	}
}
