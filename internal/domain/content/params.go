package content

// Params are the sampling parameters passed to a backend. TopK and
// RepetitionPenalty are only honoured by local models; zero means unset.
type Params struct {
	Temperature       float32 `json:"temperature"`
	MaxTokens         int     `json:"max_tokens"`
	TopP              float32 `json:"top_p"`
	TopK              int     `json:"top_k,omitempty"`
	RepetitionPenalty float32 `json:"repetition_penalty,omitempty"`
}

var remoteParams = map[Kind]Params{
	KindProduct:   {Temperature: 0.7, MaxTokens: 800, TopP: 0.9, TopK: 40},
	KindSocial:    {Temperature: 0.8, MaxTokens: 300, TopP: 0.9},
	KindBlog:      {Temperature: 0.7, MaxTokens: 1500, TopP: 0.9},
	KindMarketing: {Temperature: 0.8, MaxTokens: 1000, TopP: 0.9},
}

var localParams = map[Kind]Params{
	KindProduct:   {Temperature: 0.7, MaxTokens: 200, TopP: 0.9, TopK: 50, RepetitionPenalty: 1.1},
	KindSocial:    {Temperature: 0.8, MaxTokens: 100, TopP: 0.95, TopK: 50, RepetitionPenalty: 1.05},
	KindBlog:      {Temperature: 0.6, MaxTokens: 500, TopP: 0.9, TopK: 50, RepetitionPenalty: 1.2},
	KindMarketing: {Temperature: 0.8, MaxTokens: 300, TopP: 0.9, TopK: 50, RepetitionPenalty: 1.1},
}

// RemoteParams returns the sampling parameters used for hosted models.
func RemoteParams(kind Kind) Params {
	if p, ok := remoteParams[kind]; ok {
		return p
	}
	return remoteParams[KindProduct]
}

// LocalParams returns the sampling parameters used for local models.
func LocalParams(kind Kind) Params {
	if p, ok := localParams[kind]; ok {
		return p
	}
	return localParams[KindProduct]
}
