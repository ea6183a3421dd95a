package main

// Book represents a book entity.
type Book struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   int     `json:"year"`
	Genre  string  `json:"genre"`
	Price  float64 `json:"price"`
}

// BookInput is the payload accepted on book creation and update. Pointer
// fields let the validation tell a missing field from a zero value.
type BookInput struct {
	Title  *string  `json:"title"`
	Author *string  `json:"author"`
	Year   *int     `json:"year"`
	Genre  *string  `json:"genre"`
	Price  *float64 `json:"price"`
}

// Book builds the book entity described by the payload. It must
// be called on a payload that passed validation.
func (in *BookInput) Book(id int) Book {
	return Book{
		ID:     id,
		Title:  *in.Title,
		Author: *in.Author,
		Year:   *in.Year,
		Genre:  *in.Genre,
		Price:  *in.Price,
	}
}
