package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/mergington/internal/domain/model"
)

// DefaultCatalog returns the activity table the service starts with when no
// seed file is configured. Each call returns a fresh copy.
func DefaultCatalog() model.Catalog {
	return model.Catalog{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Soccer Team": {
			Description:     "Join the school soccer team and compete in matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
		},
		"Basketball Team": {
			Description:     "Practice and play basketball with the school team",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
		},
		"Art Club": {
			Description:     "Explore your creativity through painting and drawing",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
		},
		"Drama Club": {
			Description:     "Act, direct, and produce plays and performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
		},
		"Math Club": {
			Description:     "Solve challenging problems and participate in math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
		},
		"Debate Team": {
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
		},
	}
}

// ValidateCatalog checks a seed table: names and emails non-empty,
// max_participants positive, no email listed twice within one activity.
func ValidateCatalog(c model.Catalog) error {
	for name, a := range c {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty activity name", ErrInvalidSeed)
		}
		if a.MaxParticipants <= 0 {
			return fmt.Errorf("%w: %q: max_participants must be positive", ErrInvalidSeed, name)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, p := range a.Participants {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("%w: %q: empty participant", ErrInvalidSeed, name)
			}
			if _, dup := seen[p]; dup {
				return fmt.Errorf("%w: %q: %s listed twice", ErrInvalidSeed, name, p)
			}
			seen[p] = struct{}{}
		}
	}
	return nil
}

// seedActivity is the YAML shape of one entry in a seed file.
type seedActivity struct {
	Name            string   `koanf:"name"`
	Description     string   `koanf:"description"`
	Schedule        string   `koanf:"schedule"`
	MaxParticipants int      `koanf:"max_participants"`
	Participants    []string `koanf:"participants"`
}

// LoadSeedFile reads an activity table from a YAML file of the form:
//
//	activities:
//	  - name: Chess Club
//	    description: Learn strategies and compete in chess tournaments
//	    schedule: Fridays, 3:30 PM - 5:00 PM
//	    max_participants: 12
//	    participants: [michael@mergington.edu]
//
// Activities are a list rather than a map so names may contain any character.
func LoadSeedFile(_ context.Context, path string) (model.Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Join(ErrLoadSeed, err)
	}

	var entries []seedActivity
	if err := k.UnmarshalWithConf("activities", &entries, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Join(ErrLoadSeed, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s defines no activities", ErrInvalidSeed, path)
	}

	c := make(model.Catalog, len(entries))
	for _, e := range entries {
		if _, dup := c[e.Name]; dup {
			return nil, fmt.Errorf("%w: activity %q defined twice", ErrInvalidSeed, e.Name)
		}
		participants := e.Participants
		if participants == nil {
			participants = []string{}
		}
		c[e.Name] = model.Activity{
			Description:     e.Description,
			Schedule:        e.Schedule,
			MaxParticipants: e.MaxParticipants,
			Participants:    participants,
		}
	}
	if err := ValidateCatalog(c); err != nil {
		return nil, err
	}
	return c, nil
}
