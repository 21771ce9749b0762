package api

import (
	"svbase/internal/access"
	"svbase/internal/meta"
	"svbase/internal/reference"
)

// Server: всё, что нужно обработчикам. Реестр после старта только читается.
type Server struct {
	Registry *meta.Registry
	Records  *access.Records
	Lists    *access.Lists
	Titles   reference.Catalog
}

func NewServer(reg *meta.Registry, gw access.Gateway, titles reference.Catalog, opts ...access.Option) *Server {
	if reg == nil {
		reg = meta.Empty()
	}
	if titles == nil {
		titles = reference.Catalog{}
	}
	return &Server{
		Registry: reg,
		Records:  access.NewRecords(reg, gw, opts...),
		Lists:    access.NewLists(reg, gw),
		Titles:   titles,
	}
}
