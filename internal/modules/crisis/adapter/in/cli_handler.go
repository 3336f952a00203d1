package in

import (
	crisisdto "mindful/internal/modules/crisis/dto"
	crisisin "mindful/internal/modules/crisis/port/in"
)

type CLIHandler struct {
	usecase crisisin.Usecase
}

func NewCLIHandler(usecase crisisin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Directory() crisisdto.DirectoryOutput {
	return h.usecase.Directory()
}

func (h CLIHandler) Markdown() string {
	return h.usecase.Markdown()
}

func (h CLIHandler) Text() string {
	return h.usecase.PlainText()
}
