package templates

// Option is one select choice.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// PaginationView drives the pager under listings.
type PaginationView struct {
	Page       int
	TotalPages int
	Total      int
	PrevURL    string
	NextURL    string
}

// Badge is a status chip with a semantic color.
type Badge struct {
	Label string
	Color string
}

func (b Badge) class() string {
	color := b.Color
	if color == "" {
		color = "default"
	}
	return "badge badge-" + color
}

func buttonClass(variant string) string {
	return "button button-" + variant
}

// orDash fills empty definition values.
func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
