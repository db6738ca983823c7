// Package flagx lets several config layers share os.Args without tripping
// over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args made of the flags named in
// allowedFlags, each followed by its value when one was given.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -d users.db
//  2. Flag and value joined with '=':        -d=users.db
//
// A following argument that starts with "-" is never taken as a value, so
// boolean-style flags pass through alone.
//
// Parameters:
//
//	args          the command-line arguments, usually os.Args[1:]
//	allowedFlags  flag names to keep, e.g. []string{"-a", "-d"}
//
// Returns:
//
//	A non-nil slice with the kept flags in their original order.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags extracts the config file path passed via -c or -config.
//
// Only those two flags are parsed, so the call is safe to make before the
// application registers its own flag set. If neither is present, an empty
// string is returned and the JSON layer is skipped.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "path to config file")
	fs.StringVar(&config, "c", "", "path to config file (short)")
	_ = fs.Parse(args)

	return config
}
