package common

import "github.com/nitrictech/go-sdk/faas"

func HttpResponse(ctx *faas.HttpContext, message string, status int) (*faas.HttpContext, error) {
	ctx.Response.Body = []byte(message)
	ctx.Response.Status = status
	return ctx, nil
}

func JsonResponse(ctx *faas.HttpContext, body []byte, status int) (*faas.HttpContext, error) {
	ctx.Response.Headers["Content-Type"] = []string{"application/json"}
	ctx.Response.Body = body
	ctx.Response.Status = status
	return ctx, nil
}
