package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadEnvFile copies KEY=value pairs from a dotenv file into the process
// environment so ROGUE_ overrides can live beside the binary. Variables already
// set in the environment win. A missing file is not an error.
//
// Postcondition: Returns (true, nil) when the file was loaded, (false, nil) when
// it does not exist, or a non-nil error for a malformed file.
func LoadEnvFile(path string) (bool, error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("loading env file %s: %w", path, err)
	}
	return true, nil
}
