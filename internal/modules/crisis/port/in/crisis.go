package in

import "mindful/internal/modules/crisis/dto"

type Usecase interface {
	Directory() dto.DirectoryOutput
	Markdown() string
	PlainText() string
}
