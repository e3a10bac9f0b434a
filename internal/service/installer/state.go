package installer

// InstallState accumulates the backend settings the wizard collects
// before they are written to the runtime .env file.
type InstallState struct {
	Provider        string
	APIKey          string
	GenerationURL   string
	GenerationModel string
	EmbeddingModel  string
}

func NewInstallState() *InstallState {
	return &InstallState{}
}

// EnvMap renders the collected settings as environment variables.
// Unset values are omitted. The embedding backend URL follows the
// generation URL since both usually point at the same Ollama instance.
func (s *InstallState) EnvMap() map[string]string {
	vars := map[string]string{}
	set := func(key, val string) {
		if val != "" {
			vars[key] = val
		}
	}
	set("ARCHIE_GEN_PROVIDER", s.Provider)
	set("ARCHIE_GEN_API_KEY", s.APIKey)
	set("ARCHIE_GEN_BASE_URL", s.GenerationURL)
	set("ARCHIE_GEN_MODEL", s.GenerationModel)
	set("ARCHIE_EMBED_MODEL", s.EmbeddingModel)
	set("ARCHIE_EMBED_BASE_URL", s.GenerationURL)
	return vars
}
