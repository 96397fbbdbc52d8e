package config

import "time"

const (
	DefaultBaseURL             = "https://api.metaphor.systems"
	DefaultAPIKeyEnv           = "METAPHOR_API_KEY"
	DefaultNumResults          = 10
	DefaultRecencyDays         = 7
	DefaultPublishedWithinDays = 30
	DefaultSearchTimeout       = 60 * time.Second
	DefaultLogFile             = "similar_pages_log.json"
	DefaultTitleTimeout        = 15 * time.Second
	DefaultBrowserWait         = 2 * time.Second
)

// DefaultUserAgents provides a list of common user agents
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
}

// DefaultSeeds provides the seed URLs searched when none are configured
var DefaultSeeds = []string{
	"https://danielsgriffin.com/hire-me/",
	"https://danielsgriffin.com/research/",
	"https://danielsgriffin.com/about/",
	"https://danielsgriffin.com/diss/",
	"https://danielsgriffin.com/publications/",
}

// DefaultTitleSelectors are tried in order when resolving a missing page title
var DefaultTitleSelectors = []string{
	"meta[property='og:title']",
	"title",
	"h1",
}
