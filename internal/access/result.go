package access

import "net/http"

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// Result: единый конверт ответа для всех операций.
type Result struct {
	Status     int         `json:"status"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func Respond(data any, err error) Result {
	if err != nil {
		return Failure(err)
	}
	return Result{Status: http.StatusOK, Message: "OK", Data: data}
}

func RespondPage(page PageResult, err error) Result {
	if err != nil {
		return Failure(err)
	}
	p := page.Pagination
	return Result{Status: http.StatusOK, Message: "OK", Data: page.Records, Pagination: &p}
}

func RespondDeleted(uuid string, err error) Result {
	if err != nil {
		return Failure(err)
	}
	return Result{
		Status:  http.StatusOK,
		Message: "Record deleted successfully",
		Data:    map[string]any{"uuid": uuid},
	}
}

func Failure(err error) Result {
	return Result{Status: StatusOf(err), Message: err.Error()}
}
