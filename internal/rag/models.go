package rag

// DocChunk
// Um trecho da base de conhecimento sobre o gato-leopardo (石虎), como ficou gravado no índice.
type DocChunk struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	SourceURL string  `json:"sourceUrl"`
	Distance  float32 `json:"distance"`
}

// GenerateOptions
// Configuração de decodificação enviada ao modelo remoto.
type GenerateOptions struct {
	Temperature float32
}

// AskRequest
// Payload da API /ask.
type AskRequest struct {
	Question string `json:"question"`
}

// SourceRef
// Metadados dos trechos usados para montar o contexto.
type SourceRef struct {
	ChunkID   string  `json:"chunkId"`
	Title     string  `json:"title"`
	SourceURL string  `json:"sourceUrl"`
	Distance  float32 `json:"distance"`
}

// AskResponse
// Resposta da API: texto + fontes + idioma detectado da pergunta.
type AskResponse struct {
	Answer  string      `json:"answer"`
	Sources []SourceRef `json:"sources"`
	Lang    string      `json:"lang"`
}
