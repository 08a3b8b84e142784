package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/oomph-ac/motion/game"
	"github.com/pelletier/go-toml"
)

// Settings contains every tunable value used while resolving object motion.
type Settings struct {
	Physics struct {
		// Epsilon is the tolerance used for contact and penetration tests.
		Epsilon float32
		// LandingZ is the minimum normal Z of a plane an object may land on.
		LandingZ float32
		// FloorZ is the walkable normal Z used when an object does not supply its own.
		FloorZ float32
		// DefaultStepDownHeight is the ground-follow distance for objects without their own step-down
		// height, and the step-up height of objects that are not on a walkable surface.
		DefaultStepDownHeight float32
	}
	Attempts struct {
		// Insert is the retry budget of placement and transitional insertion.
		Insert int
		// StepDown is the retry budget of the insertion run by a step-down.
		StepDown int
		// CheckWalkable is the retry budget of the walkability probe.
		CheckWalkable int
		// Revalidate is the retry budget of the placement insertion run after a successful step-down.
		Revalidate int
	}
	Placement struct {
		// SearchDistance is the maximum distance the spiral search moves away from the target.
		SearchDistance float32
		// SmallSphereRadius is the radius below which a sphere halves the search.
		SmallSphereRadius float32
		// MinSearchRadius is the smallest radius used when dividing the search into rings.
		MinSearchRadius float32
	}
	// MaxDepth is the amount of transitions that may be nested at once.
	MaxDepth int
	// LogLevel is the log level used by the simulation driver.
	LogLevel string
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Physics.Epsilon = game.Epsilon
	s.Physics.LandingZ = game.LandingZ
	s.Physics.FloorZ = game.FloorZ
	s.Physics.DefaultStepDownHeight = game.DefaultStepDownHeight

	s.Attempts.Insert = game.InsertAttempts
	s.Attempts.StepDown = game.StepDownAttempts
	s.Attempts.CheckWalkable = game.CheckWalkableTries
	s.Attempts.Revalidate = game.RevalidateAttempts

	s.Placement.SearchDistance = game.PlacementSearchDistance
	s.Placement.SmallSphereRadius = game.SmallSphereRadius
	s.Placement.MinSearchRadius = game.MinSearchRadius

	s.MaxDepth = game.MaxTransitionDepth
	s.LogLevel = "info"
	return s
}

// Validate clamps the nesting depth into range and rejects budgets that could never succeed.
func (s *Settings) Validate() error {
	if s.MaxDepth <= 0 || s.MaxDepth > game.MaxTransitionDepth {
		s.MaxDepth = game.MaxTransitionDepth
	}
	if s.Attempts.Insert <= 0 || s.Attempts.StepDown <= 0 || s.Attempts.CheckWalkable <= 0 || s.Attempts.Revalidate <= 0 {
		return errors.New("settings: attempt budgets must be positive")
	}
	if s.Physics.Epsilon <= 0 {
		return errors.New("settings: epsilon must be positive")
	}
	if s.Placement.SearchDistance < 0 {
		return errors.New("settings: search distance must not be negative")
	}
	return nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("settings: encode defaults: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("settings: create %s: %w", path, err)
	}
	return nil
}

// Load loads the settings at path, writing the defaults there first if the file does not exist yet.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveDefault(path); err != nil {
			return Settings{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: load %s: %w", path, err)
	}

	s := DefaultSettings()
	if err = toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: decode %s: %w", path, err)
	}
	return s, s.Validate()
}
