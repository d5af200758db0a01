package model

// Summary is an owner's packet overview: what was transported off the fields
// and what the lots currently hold. The two differ by direct lot edits.
type Summary struct {
	TotalFields      int     `json:"total_fields"`
	TotalLots        int     `json:"total_lots"`
	Transported      Packets `json:"transported"`
	TotalTransported int     `json:"total_transported"`
	InLots           Packets `json:"in_lots"`
	TotalInLots      int     `json:"total_in_lots"`
}
