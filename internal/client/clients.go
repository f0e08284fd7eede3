package client

import "net/http"

type Clients struct {
	*FileAPI
}

func InitClients(maxSize int64) Clients {
	return Clients{
		FileAPI: NewFileAPI(http.DefaultClient, maxSize),
	}
}
