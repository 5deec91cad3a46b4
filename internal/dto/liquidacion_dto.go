package dto

type MarcarPagadaRequest struct {
	Observaciones *string `json:"observaciones"`
}
