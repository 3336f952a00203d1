package usecase

import (
	"mindful/internal/modules/crisis/domain"
	crisisdto "mindful/internal/modules/crisis/dto"
)

type Interactor struct {
	directory domain.Directory
}

func NewInteractor() *Interactor {
	return &Interactor{directory: domain.Default()}
}

func (i *Interactor) Directory() crisisdto.DirectoryOutput {
	d := i.directory
	out := crisisdto.DirectoryOutput{
		EmergencyNotice: d.EmergencyNotice,
		EmergencyNumber: d.EmergencyNumber,
		Hotlines:        make([]crisisdto.HotlineOutput, 0, len(d.Hotlines)),
		Strategies:      append([]string(nil), d.Strategies...),
		Links:           make([]crisisdto.LinkOutput, 0, len(d.Links)),
	}
	for _, h := range d.Hotlines {
		out.Hotlines = append(out.Hotlines, crisisdto.HotlineOutput{
			ID:          h.ID,
			Title:       h.Title,
			Description: h.Description,
			Phone:       h.Phone,
			Text:        h.Text,
			Available:   h.Available,
		})
	}
	for _, l := range d.Links {
		out.Links = append(out.Links, crisisdto.LinkOutput{Title: l.Title, Description: l.Description, URL: l.URL})
	}
	return out
}

func (i *Interactor) Markdown() string  { return i.directory.Markdown() }
func (i *Interactor) PlainText() string { return i.directory.PlainText() }
