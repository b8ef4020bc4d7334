package labeltree

// Payload is one subtype row
// fields are pointers so absent and null can be told apart from zero values
type Payload interface {
	Subtype() Subtype
}

// AdPayload is a commercial break or PSA spot
type AdPayload struct {
	Type     *string `json:"type,omitempty" db:"type,required" validate:"omitempty,oneof=COMMERCIAL_BREAK PSA" example:"COMMERCIAL_BREAK"`
	Brand    *string `json:"brand,omitempty" db:"brand" validate:"omitempty,min=1"`
	Product  *string `json:"product,omitempty" db:"product"`
	Category *string `json:"category,omitempty" db:"category"`
	Sector   *string `json:"sector,omitempty" db:"sector"`
	Format   *string `json:"format,omitempty" db:"format"`
	Title    *string `json:"title,omitempty" db:"title"`
	Language *string `json:"language,omitempty" db:"language"`
}

// SpotOutsideBreakPayload is a commercial aired outside a break
type SpotOutsideBreakPayload struct {
	Brand    *string `json:"brand,omitempty" db:"brand" validate:"omitempty,min=1"`
	Product  *string `json:"product,omitempty" db:"product"`
	Category *string `json:"category,omitempty" db:"category"`
	Sector   *string `json:"sector,omitempty" db:"sector"`
	Format   *string `json:"format,omitempty" db:"format"`
	Title    *string `json:"title,omitempty" db:"title"`
	Language *string `json:"language,omitempty" db:"language"`
}

// PromoPayload is a channel promo
type PromoPayload struct {
	ProgramName *string `json:"program_name,omitempty" db:"program_name"`
	MovieName   *string `json:"movie_name,omitempty" db:"movie_name"`
	EventName   *string `json:"event_name,omitempty" db:"event_name"`
}

// ProgramPayload is a scheduled program episode
type ProgramPayload struct {
	ProgramName   *string `json:"program_name,omitempty" db:"program_name,required" validate:"omitempty,min=1"`
	Genre         *string `json:"genre,omitempty" db:"genre"`
	EpisodeNumber *int    `json:"episode_number,omitempty" db:"episode_number,required" validate:"omitempty,gt=0"`
	SeasonNumber  *int    `json:"season_number,omitempty" db:"season_number,required" validate:"omitempty,gt=0"`
	Language      *string `json:"language,omitempty" db:"language"`
}

// MoviePayload is a movie broadcast
type MoviePayload struct {
	MovieName   *string `json:"movie_name,omitempty" db:"movie_name,required" validate:"omitempty,min=1" example:"Test"`
	Genre       *string `json:"genre,omitempty" db:"genre"`
	Director    *string `json:"director,omitempty" db:"director"`
	ReleaseYear *int    `json:"release_year,omitempty" db:"release_year" validate:"omitempty,gt=0"`
	Language    *string `json:"language,omitempty" db:"language"`
	Duration    *int    `json:"duration,omitempty" db:"duration" validate:"omitempty,gt=0"`
	Rating      *int    `json:"rating,omitempty" db:"rating,required" validate:"omitempty,gt=0"`
}

// SongPayload is a music track
type SongPayload struct {
	SongName    *string `json:"song_name,omitempty" db:"song_name,required" validate:"omitempty,min=1"`
	Artist      *string `json:"artist,omitempty" db:"artist"`
	Album       *string `json:"album,omitempty" db:"album"`
	Language    *string `json:"language,omitempty" db:"language"`
	ReleaseYear *int    `json:"release_year,omitempty" db:"release_year" validate:"omitempty,gt=0"`
}

// SportsPayload is a sports broadcast
type SportsPayload struct {
	ProgramTitle    *string `json:"program_title,omitempty" db:"program_title,required" validate:"omitempty,min=1"`
	SportType       *string `json:"sport_type,omitempty" db:"sport_type,required" validate:"omitempty,min=1"`
	ProgramCategory *string `json:"program_category,omitempty" db:"program_category,required" validate:"omitempty,min=1"`
	Language        *string `json:"language,omitempty" db:"language"`
	Live            *bool   `json:"live,omitempty" db:"live"`
}

// NewsPayload is a news segment
type NewsPayload struct {
	NewsSegment *string `json:"news_segment,omitempty" db:"news_segment,required" validate:"omitempty,min=1"`
	Category    *string `json:"category,omitempty" db:"category"`
	Anchor      *string `json:"anchor,omitempty" db:"anchor"`
	Language    *string `json:"language,omitempty" db:"language"`
	Duration    *int    `json:"duration,omitempty" db:"duration" validate:"omitempty,gt=0"`
}

// NoVideoPayload is a loss of picture
type NoVideoPayload struct {
	DisruptionType *string `json:"disruption_type,omitempty" db:"disruption_type,required" validate:"omitempty,min=1"`
	Reason         *string `json:"reason,omitempty" db:"reason"`
	Description    *string `json:"description,omitempty" db:"description"`
}

// StandByPayload is a standby slate
type StandByPayload struct {
	StandbyType *string `json:"standby_type,omitempty" db:"standby_type,required" validate:"omitempty,min=1"`
	Reason      *string `json:"reason,omitempty" db:"reason"`
	Description *string `json:"description,omitempty" db:"description"`
}

// applyDefaults fills optional fields whose columns are NOT NULL
func applyDefaults(p Payload) {
	if sp, ok := p.(*SportsPayload); ok && sp.Live == nil {
		live := false
		sp.Live = &live
	}
}

// Subtype implementations
func (*AdPayload) Subtype() Subtype               { return Ad }
func (*SpotOutsideBreakPayload) Subtype() Subtype { return SpotOutsideBreak }
func (*PromoPayload) Subtype() Subtype            { return Promo }
func (*ProgramPayload) Subtype() Subtype          { return Program }
func (*MoviePayload) Subtype() Subtype            { return Movie }
func (*SongPayload) Subtype() Subtype             { return Song }
func (*SportsPayload) Subtype() Subtype           { return Sports }
func (*NewsPayload) Subtype() Subtype             { return News }
func (*NoVideoPayload) Subtype() Subtype          { return NoVideo }
func (*StandByPayload) Subtype() Subtype          { return StandBy }
