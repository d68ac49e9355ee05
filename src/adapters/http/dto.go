package http

import (
	"bytes"
	"encoding/json"
	"time"

	"movieapi/src/domain"
	"movieapi/src/domain/entities"
)

// ############################# REQUESTS #############################

// MovieIDList accepts either a single id or a list of ids.
type MovieIDList []string

func (l *MovieIDList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*l = MovieIDList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

type CreateDirectorRequest struct {
	Name  string      `json:"name"`
	Movie MovieIDList `json:"movie"`
	Genre *string     `json:"genre,omitempty"`
	Year  *int        `json:"year,omitempty"`
}

type UpdateDirectorRequest struct {
	Name string `json:"name"`
}

type CreateMovieRequest struct {
	Title string `json:"title"`
	Year  *int   `json:"year,omitempty"`
}

// ############################# RESPONSES ############################

type MovieRefDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DirectorDTO is the read view: movies expanded.
type DirectorDTO struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Movie []MovieRefDTO `json:"movie"`
	Genre *string       `json:"genre,omitempty"`
	Year  *int          `json:"year,omitempty"`
}

// DirectorDocumentDTO is the stored document as written: movie ids only.
type DirectorDocumentDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Movie     []string  `json:"movie"`
	Genre     *string   `json:"genre,omitempty"`
	Year      *int      `json:"year,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MovieDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Year      *int      `json:"year,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MetadataDTO struct {
	Method string `json:"method"`
	Host   string `json:"host"`
}

type RequestHintDTO struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

type ErrorDTO struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorDTO `json:"error"`
}

type DirectorListResponse struct {
	Message      string         `json:"message"`
	DirectorList []*DirectorDTO `json:"directorList"`
}

type DirectorResponse struct {
	Message  string       `json:"message"`
	Director *DirectorDTO `json:"director"`
}

type CreateDirectorResponse struct {
	Message  string               `json:"message"`
	Director *DirectorDocumentDTO `json:"director"`
	Metadata MetadataDTO          `json:"metadata"`
}

type UpdateDirectorResponse struct {
	Message  string       `json:"message"`
	Result   *DirectorDTO `json:"result"`
	Metadata MetadataDTO  `json:"metadata"`
}

type DeleteDirectorResponse struct {
	Message string               `json:"message"`
	Result  *DirectorDocumentDTO `json:"result"`
	Request RequestHintDTO       `json:"request"`
}

type MovieResponse struct {
	Message string    `json:"message"`
	Movie   *MovieDTO `json:"movie"`
}

type MovieListResponse struct {
	Message   string      `json:"message"`
	MovieList []*MovieDTO `json:"movieList"`
}

// ############################# MAPPERS ##############################

func MapPopulatedDirectorToResponse(director *domain.PopulatedDirector) *DirectorDTO {
	if director == nil {
		return nil
	}

	movies := make([]MovieRefDTO, 0, len(director.Movies))
	for _, movie := range director.Movies {
		movies = append(movies, MovieRefDTO{ID: movie.ID, Title: movie.Title})
	}

	return &DirectorDTO{
		ID:    director.ID,
		Name:  director.Name,
		Movie: movies,
		Genre: director.Genre,
		Year:  director.Year,
	}
}

func MapDirectorDocumentToResponse(director *entities.Director) *DirectorDocumentDTO {
	if director == nil {
		return nil
	}

	movieIDs := director.MovieIDs
	if movieIDs == nil {
		movieIDs = []string{}
	}

	return &DirectorDocumentDTO{
		ID:        director.ID,
		Name:      director.Name,
		Movie:     movieIDs,
		Genre:     director.Genre,
		Year:      director.Year,
		CreatedAt: director.CreatedAt,
		UpdatedAt: director.UpdatedAt,
	}
}

func MapMovieToResponse(movie *entities.Movie) *MovieDTO {
	if movie == nil {
		return nil
	}

	return &MovieDTO{
		ID:        movie.ID,
		Title:     movie.Title,
		Year:      movie.Year,
		CreatedAt: movie.CreatedAt,
		UpdatedAt: movie.UpdatedAt,
	}
}
