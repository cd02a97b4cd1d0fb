package domain

// DomainScope is one half of an app's domain configuration.
type DomainScope struct {
	Enabled bool
	Vhosts  []string
}

// DomainConfig is the app-scoped and global-scoped vhost configuration of an app.
type DomainConfig struct {
	App    DomainScope
	Global DomainScope
}

// EffectiveDomains are the hostnames an app actually answers on.
type EffectiveDomains struct {
	App    []string `json:"app" yaml:"app"`
	Global []string `json:"global" yaml:"global"`
}

// All returns app domains followed by global ones.
func (e EffectiveDomains) All() []string {
	all := make([]string, 0, len(e.App)+len(e.Global))
	all = append(all, e.App...)
	return append(all, e.Global...)
}

// Effective derives the hostnames of app: app vhosts as-is when the app scope is
// enabled, and app.<vhost> for each global vhost when the global scope is.
func (c DomainConfig) Effective(app string) EffectiveDomains {
	out := EffectiveDomains{App: []string{}, Global: []string{}}
	if c.App.Enabled {
		out.App = append(out.App, c.App.Vhosts...)
	}
	if c.Global.Enabled {
		for _, vhost := range c.Global.Vhosts {
			out.Global = append(out.Global, app+"."+vhost)
		}
	}
	return out
}

// DomainsReport pairs the parsed configuration with the derived domains.
type DomainsReport struct {
	Config    DomainConfig     `json:"-" yaml:"-"`
	Effective EffectiveDomains `json:"domains" yaml:"domains"`
}
