package reelrun

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"
)

var envNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ReadEnvFile parses the workspace .env file into a name->value map.
// A missing file yields an empty map.
func ReadEnvFile(workspaceDir string) (gotenv.Env, error) {
	envPath := filepath.Join(workspaceDir, EnvFileName)

	env, err := gotenv.Read(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return gotenv.Env{}, nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	return env, nil
}

// EnvNames returns the sorted variable names of an env map
func EnvNames(env gotenv.Env) []string {
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetEnv sets NAME=VALUE in the workspace .env file, creating the file if
// needed. An existing assignment for NAME is replaced in place; comments and
// unrelated lines are preserved.
func SetEnv(workspaceDir, name, value string) error {
	if !envNameRe.MatchString(name) {
		return fmt.Errorf("invalid environment variable name %q", name)
	}

	if err := SeedEnvFile(workspaceDir); err != nil {
		return err
	}

	envPath := filepath.Join(workspaceDir, EnvFileName)
	data, err := os.ReadFile(envPath)
	if err != nil {
		return fmt.Errorf("failed to read env file: %w", err)
	}

	entry := formatEnvEntry(name, value)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	replaced := false
	for i, line := range lines {
		if envLineName(line) == name {
			lines[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}

	if err := writeEnvLines(envPath, lines); err != nil {
		return err
	}

	zlog.Debug("env variable set",
		zap.String("workspace", workspaceDir),
		zap.String("name", name),
		zap.Bool("replaced", replaced))

	return nil
}

// UnsetEnv removes any assignment of NAME from the workspace .env file.
// Returns true when an assignment was removed.
func UnsetEnv(workspaceDir, name string) (bool, error) {
	envPath := filepath.Join(workspaceDir, EnvFileName)

	data, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read env file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	kept := make([]string, 0, len(lines))
	removed := false
	for _, line := range lines {
		if envLineName(line) == name {
			removed = true
			continue
		}
		kept = append(kept, line)
	}

	if !removed {
		return false, nil
	}

	if err := writeEnvLines(envPath, kept); err != nil {
		return false, err
	}

	zlog.Debug("env variable unset",
		zap.String("workspace", workspaceDir),
		zap.String("name", name))

	return true, nil
}

// envLineName extracts the variable name from a dotenv line, or "" for
// comments, blanks and anything else
func envLineName(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}
	trimmed = strings.TrimPrefix(trimmed, "export ")

	idx := strings.IndexByte(trimmed, '=')
	if idx < 0 {
		return ""
	}

	name := strings.TrimSpace(trimmed[:idx])
	if !envNameRe.MatchString(name) {
		return ""
	}
	return name
}

// formatEnvEntry renders NAME=VALUE, quoting values that dotenv parsers would
// otherwise mangle
func formatEnvEntry(name, value string) string {
	if strings.ContainsAny(value, " \t#\"'\n") {
		return fmt.Sprintf("%s=%q", name, value)
	}
	return fmt.Sprintf("%s=%s", name, value)
}

func writeEnvLines(envPath string, lines []string) error {
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}

	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}
	return nil
}
