package domain

// Response messages for the director and movie resources.
const (
	MessageDirector              = "Directors retrieved"
	MessageDirectorEmpty         = "No directors found"
	MessageDirectorFound         = "Director found"
	MessageDirectorNotFound      = "Director not found"
	MessageDirectorSubmitted     = "Director submitted"
	MessageDirectorPostDuplicate = "Director already exists for this movie"
	MessageDirectorUpdated       = "Director updated"
	MessageDirectorDeleted       = "Director deleted"
	MessageDirectorInvalid       = "Invalid director payload"

	MessageMovie          = "Movies retrieved"
	MessageMovieEmpty     = "No movies found"
	MessageMovieFound     = "Movie found"
	MessageMovieNotFound  = "Movie not found"
	MessageMovieSubmitted = "Movie submitted"
	MessageMovieInvalid   = "Invalid movie payload"
)
