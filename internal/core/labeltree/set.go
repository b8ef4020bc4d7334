package labeltree

// Payloads carries at most one payload per subtype, keyed as in the API
type Payloads struct {
	Ad               *AdPayload               `json:"ad,omitempty"`
	SpotOutsideBreak *SpotOutsideBreakPayload `json:"spotOutsideBreak,omitempty"`
	Promo            *PromoPayload            `json:"promo,omitempty"`
	Program          *ProgramPayload          `json:"program,omitempty"`
	Movie            *MoviePayload            `json:"movie,omitempty"`
	Song             *SongPayload             `json:"song,omitempty"`
	Sports           *SportsPayload           `json:"sports,omitempty"`
	News             *NewsPayload             `json:"news,omitempty"`
	NoVideo          *NoVideoPayload          `json:"noVideo,omitempty"`
	StandBy          *StandByPayload          `json:"standBy,omitempty"`
}

// Get returns the payload for s or nil when absent
func (p *Payloads) Get(s Subtype) Payload {
	switch s {
	case Ad:
		if p.Ad != nil {
			return p.Ad
		}
	case SpotOutsideBreak:
		if p.SpotOutsideBreak != nil {
			return p.SpotOutsideBreak
		}
	case Promo:
		if p.Promo != nil {
			return p.Promo
		}
	case Program:
		if p.Program != nil {
			return p.Program
		}
	case Movie:
		if p.Movie != nil {
			return p.Movie
		}
	case Song:
		if p.Song != nil {
			return p.Song
		}
	case Sports:
		if p.Sports != nil {
			return p.Sports
		}
	case News:
		if p.News != nil {
			return p.News
		}
	case NoVideo:
		if p.NoVideo != nil {
			return p.NoVideo
		}
	case StandBy:
		if p.StandBy != nil {
			return p.StandBy
		}
	}
	return nil
}

// Set stores pl under its own subtype key
func (p *Payloads) Set(pl Payload) {
	switch v := pl.(type) {
	case *AdPayload:
		p.Ad = v
	case *SpotOutsideBreakPayload:
		p.SpotOutsideBreak = v
	case *PromoPayload:
		p.Promo = v
	case *ProgramPayload:
		p.Program = v
	case *MoviePayload:
		p.Movie = v
	case *SongPayload:
		p.Song = v
	case *SportsPayload:
		p.Sports = v
	case *NewsPayload:
		p.News = v
	case *NoVideoPayload:
		p.NoVideo = v
	case *StandByPayload:
		p.StandBy = v
	}
}

// Present lists the subtypes that carry a payload, in inspection order
func (p *Payloads) Present() []Subtype {
	var out []Subtype
	for _, s := range All() {
		if p.Get(s) != nil {
			out = append(out, s)
		}
	}
	return out
}

// Only returns a Payloads holding just the payload for s
func (p *Payloads) Only(s Subtype) Payloads {
	var out Payloads
	if pl := p.Get(s); pl != nil {
		out.Set(pl)
	}
	return out
}

// New returns an empty payload for s, ready to be scanned into
func New(s Subtype) Payload {
	switch s {
	case Ad:
		return &AdPayload{}
	case SpotOutsideBreak:
		return &SpotOutsideBreakPayload{}
	case Promo:
		return &PromoPayload{}
	case Program:
		return &ProgramPayload{}
	case Movie:
		return &MoviePayload{}
	case Song:
		return &SongPayload{}
	case Sports:
		return &SportsPayload{}
	case News:
		return &NewsPayload{}
	case NoVideo:
		return &NoVideoPayload{}
	case StandBy:
		return &StandByPayload{}
	}
	return nil
}
