// Package sales classifies sales-register rows into ordinary sales,
// returns and inter-company stock transfers, and assigns sales channels.
package sales

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/tallyfold/mis/internal/mis"
)

// StatePattern maps a party-name pattern to a destination state.
type StatePattern struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	State   string `json:"state" yaml:"state"`
}

// Config holds the detection heuristics. Transfer detection is an
// allowlist, not accounting law: patterns are data so a new sibling
// entity or warehouse city is a config change.
type Config struct {
	// TransferOriginState is the only state whose registers can emit
	// inter-company transfers.
	TransferOriginState string
	// SiblingPatterns match party names of group entities.
	SiblingPatterns []string
	// DestinationStates resolve a transfer's destination from the party
	// name, first match wins.
	DestinationStates []StatePattern
}

// DefaultConfig returns the heuristics for the group's current entity map.
func DefaultConfig() Config {
	return Config{
		TransferOriginState: "UP",
		SiblingPatterns:     []string{`heatronics`},
		DestinationStates: []StatePattern{
			{Pattern: `maharashtra|mumbai|pune|bhiwandi`, State: "Maharashtra"},
			{Pattern: `telangana|hyderabad`, State: "Telangana"},
			{Pattern: `karnataka|bangalore|bengaluru`, State: "Karnataka"},
			{Pattern: `haryana|gurgaon|gurugram|sonipat`, State: "Haryana"},
		},
	}
}

// channelPatterns assign a channel from the party name, first match wins.
// Brand-identifying channels outrank the Shiprocket fallback because a
// party string can name both (an Amazon-fulfilled Shiprocket order stays
// Amazon).
var channelPatterns = []struct {
	re      *regexp.Regexp
	channel mis.Channel
}{
	{regexp.MustCompile(`(?i)blinkit|grofers`), mis.ChannelBlinkit},
	{regexp.MustCompile(`(?i)amazon`), mis.ChannelAmazon},
	{regexp.MustCompile(`(?i)shiprocket`), mis.ChannelWebsite},
}

// DetectChannel assigns the sales channel for a party name.
func DetectChannel(party string) mis.Channel {
	for _, cp := range channelPatterns {
		if cp.re.MatchString(party) {
			return cp.channel
		}
	}
	return mis.ChannelOfflineOEM
}

// Classifier applies the config to sales rows.
type Classifier struct {
	cfg      Config
	siblings []*regexp.Regexp
	dest     []struct {
		re    *regexp.Regexp
		state string
	}
}

// NewClassifier compiles the config. Patterns that fail to compile are
// inert, same contract as the rules package.
func NewClassifier(cfg Config) *Classifier {
	c := &Classifier{cfg: cfg}
	for _, p := range cfg.SiblingPatterns {
		if re, err := regexp.Compile("(?i)" + p); err == nil {
			c.siblings = append(c.siblings, re)
		}
	}
	for _, sp := range cfg.DestinationStates {
		if re, err := regexp.Compile("(?i)" + sp.Pattern); err == nil {
			c.dest = append(c.dest, struct {
				re    *regexp.Regexp
				state string
			}{re, sp.State})
		}
	}
	return c
}

// Classify normalizes one sales-register row. amountMinor may be
// negative, which marks a return; the stored amount is always positive.
// sourceState is the state the register belongs to.
func (c *Classifier) Classify(party string, amountMinor int64, sourceState string) mis.SalesLineItem {
	item := mis.SalesLineItem{
		ID:        uuid.New(),
		PartyName: party,
	}

	if amountMinor < 0 {
		item.AmountMinor = -amountMinor
		item.IsReturn = true
		item.Channel = DetectChannel(party)
		item.OriginalChannel = item.Channel
		return item
	}

	item.AmountMinor = amountMinor
	if c.isTransferOrigin(sourceState) && c.isSibling(party) {
		item.IsInterCompany = true
		item.ToState = c.destinationState(party)
		return item
	}

	item.Channel = DetectChannel(party)
	return item
}

func (c *Classifier) isTransferOrigin(state string) bool {
	return strings.EqualFold(strings.TrimSpace(state), c.cfg.TransferOriginState)
}

func (c *Classifier) isSibling(party string) bool {
	for _, re := range c.siblings {
		if re.MatchString(party) {
			return true
		}
	}
	return false
}

func (c *Classifier) destinationState(party string) string {
	for _, d := range c.dest {
		if d.re.MatchString(party) {
			return d.state
		}
	}
	return ""
}
