package model

// Tip is a short educational content record. Language is a plain tag, "en"
// and "tw" by convention, not a foreign key.
type Tip struct {
	Base
	Title         string  `json:"title" db:"title"`
	Content       string  `json:"content" db:"content"`
	Language      string  `json:"language" db:"language"`
	AudioFilename *string `json:"audio_filename,omitempty" db:"audio_filename"`
}

// CreateTipRequest represents tip creation parameters
type CreateTipRequest struct {
	Title         string `json:"title" binding:"required,notblank,max=200"`
	Content       string `json:"content" binding:"required"`
	Language      string `json:"language" binding:"required"`
	AudioFilename string `json:"audio_filename"`
}

// UpdateTipRequest represents tip update parameters
type UpdateTipRequest struct {
	Title         *string `json:"title" binding:"omitempty,max=200"`
	Content       *string `json:"content"`
	Language      *string `json:"language"`
	AudioFilename *string `json:"audio_filename"`
}
