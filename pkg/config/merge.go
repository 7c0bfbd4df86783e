package config

// Merge overlays o onto base and returns the result. Every non-nil field of
// o wins and is recorded under source in the result's Sources. Nested
// sections merge key by key. base is left untouched.
func Merge(base Config, o *Overrides, source string) Config {
	out := base.Clone()
	if o == nil {
		return out
	}

	if o.StubDir != nil {
		out.StubDir = *o.StubDir
		out.Sources["stub_dir"] = source
	}
	if o.ServerPort != nil {
		out.ServerPort = *o.ServerPort
		out.Sources["server_port"] = source
	}
	if o.Env != nil {
		out.Env = *o.Env
		out.Sources["env"] = source
	}
	if o.ConfinePaths != nil {
		out.ConfinePaths = *o.ConfinePaths
		out.Sources["confine_paths"] = source
	}
	if o.Watch != nil {
		out.Watch = *o.Watch
		out.Sources["watch"] = source
	}
	if o.ReadTimeout != nil {
		out.ReadTimeout = *o.ReadTimeout
		out.Sources["read_timeout"] = source
	}
	if o.WriteTimeout != nil {
		out.WriteTimeout = *o.WriteTimeout
		out.Sources["write_timeout"] = source
	}
	if o.MaxBodyBytes != nil {
		out.MaxBodyBytes = *o.MaxBodyBytes
		out.Sources["max_body_bytes"] = source
	}

	if l := o.Logging; l != nil {
		if l.Level != nil {
			out.Logging.Level = *l.Level
			out.Sources["logging.level"] = source
		}
		if l.Format != nil {
			out.Logging.Format = *l.Format
			out.Sources["logging.format"] = source
		}
	}

	if c := o.CORS; c != nil {
		if c.AllowOrigin != nil {
			out.CORS.AllowOrigin = *c.AllowOrigin
			out.Sources["cors.allow_origin"] = source
		}
		if c.AllowMethods != nil {
			out.CORS.AllowMethods = append([]string(nil), c.AllowMethods...)
			out.Sources["cors.allow_methods"] = source
		}
		if c.AllowHeaders != nil {
			out.CORS.AllowHeaders = append([]string(nil), c.AllowHeaders...)
			out.Sources["cors.allow_headers"] = source
		}
	}

	return out
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.CORS.AllowMethods = append([]string(nil), c.CORS.AllowMethods...)
	out.CORS.AllowHeaders = append([]string(nil), c.CORS.AllowHeaders...)
	out.Sources = make(map[string]string, len(c.Sources))
	for k, v := range c.Sources {
		out.Sources[k] = v
	}
	return out
}

// Source reports where the value at key came from, or SourceDefault when
// it was never tracked.
func (c Config) Source(key string) string {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}
