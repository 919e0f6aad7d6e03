package dto

// WorkResponse mirrors the JSON returned by the MusicBrainz web service
// for GET /ws/2/work/{mbid}?inc=work-rels&fmt=json.
//
// Only the fields the resolver consumes are declared; the service returns
// considerably more (aliases, ISWCs, type info) which json.Unmarshal
// silently drops.
type WorkResponse struct {
	// ID is the MBID of the looked-up work.
	ID string `json:"id"`

	// Title is the work's display title.
	Title string `json:"title"`

	// Relations holds the work-to-work relationships requested via
	// inc=work-rels.
	Relations []Relation `json:"relations"`
}

// Relation is a single work-to-work relationship.
//
// A containing (parent) work appears as type "parts" with direction
// "backward": the related work has this work as one of its parts.
type Relation struct {
	// Type is the relationship type, e.g. "parts", "arrangement".
	Type string `json:"type"`

	// Direction is "backward" when the related work is the container.
	Direction string `json:"direction"`

	// Work is the related work, when the relation targets a work.
	Work *RelatedWork `json:"work"`
}

// RelatedWork is the minimal representation of a work referenced from a
// relation.
type RelatedWork struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
