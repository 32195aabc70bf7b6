package dto

// ArchiveEpisodePayload asks a worker to copy one finished episode's audio
// into the local episode directory.
type ArchiveEpisodePayload struct {
	HistoryId string `json:"history_id"`
	JobId     string `json:"job_id"`
	Filename  string `json:"filename"`
}
