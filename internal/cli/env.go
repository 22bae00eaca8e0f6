package cli

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// OverrideVars name environment variables that point at an env file taking
// precedence over --env. The first one that loads wins.
var OverrideVars = []string{"FANYI_ENV_FILE", "HORSE_ENV_FILE"}

// EnvLoader loads .env files with a predictable override order.
type EnvLoader struct {
	value       *string
	defaultPath string
}

type envCandidate struct {
	path   string
	source string
}

// AddEnvFlag registers an --env flag and returns an EnvLoader.
func AddEnvFlag(fs *flag.FlagSet, defaultPath, description string) *EnvLoader {
	if fs == nil {
		fs = flag.CommandLine
	}
	if defaultPath == "" {
		defaultPath = ".env"
	}
	if description == "" {
		description = "Path to the .env file"
	}

	value := fs.String("env", defaultPath, description)
	return &EnvLoader{
		value:       value,
		defaultPath: defaultPath,
	}
}

// Load tries, in order: the override variables, the --env value, its
// basename in the working directory, then the default path. Values from the
// loaded file overwrite the process environment.
func (l *EnvLoader) Load() (string, error) {
	if l == nil {
		return "", fmt.Errorf("env loader is nil")
	}

	log.SetOutput(os.Stderr)

	for _, candidate := range l.candidates() {
		if err := godotenv.Overload(candidate.path); err != nil {
			if candidate.source != "" {
				log.Printf("Warning: failed to load %s=%s", candidate.source, candidate.path)
			}
			continue
		}
		if candidate.source != "" {
			log.Printf("Loaded environment from %s: %s", candidate.source, candidate.path)
		} else {
			log.Printf("Loaded environment from: %s", candidate.path)
		}
		return candidate.path, nil
	}

	return "", fmt.Errorf("failed to load env file from %s", l.requested())
}

func (l *EnvLoader) candidates() []envCandidate {
	candidates := make([]envCandidate, 0, len(OverrideVars)+3)
	for _, envVar := range OverrideVars {
		if custom := strings.TrimSpace(os.Getenv(envVar)); custom != "" {
			candidates = append(candidates, envCandidate{path: custom, source: envVar})
		}
	}

	requested := l.requested()
	candidates = append(candidates, envCandidate{path: requested})
	if base := filepath.Base(requested); base != "" && base != requested {
		candidates = append(candidates, envCandidate{path: base})
	}
	if requested != l.defaultPath {
		candidates = append(candidates, envCandidate{path: l.defaultPath})
	}
	return candidates
}

func (l *EnvLoader) requested() string {
	if l.value != nil {
		if requested := strings.TrimSpace(*l.value); requested != "" {
			return requested
		}
	}
	return l.defaultPath
}
