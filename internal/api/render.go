// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
	"github.com/valyala/fasthttp"
)

// entity is implemented by every resource of the console.
type entity interface {
	Attributes(fields listing.Fieldset) map[string]any
	ItemErrors() []model.ItemError
}

func renderList[T entity](ctx *fiber.Ctx, registry *listing.Registry[T], fields listing.Fieldset, page listing.Page[T]) error {
	var response = model.ListResponse{
		Meta: model.ListMeta{
			Page: model.PageMeta{
				Total:      page.Total,
				Size:       page.Size,
				PageNumber: page.PageNumber,
			},
		},
		Links: model.Links{
			First: pageLink(ctx, page.Links.First),
			Prev:  pageLink(ctx, page.Links.Prev),
			Next:  pageLink(ctx, page.Links.Next),
			Last:  pageLink(ctx, page.Links.Last),
		},
		Data: make([]model.Resource, 0, len(page.Items)),
	}

	for i, item := range page.Items {
		response.Data = append(response.Data, model.NewResource(
			registry.ID(item),
			registry.Kind(),
			item.Attributes(fields),
			item.ItemErrors(),
			page.Cursors[i],
		))
	}

	return ctx.Status(fiber.StatusOK).JSON(response)
}

func renderSingle[T entity](ctx *fiber.Ctx, registry *listing.Registry[T], fields listing.Fieldset, item T) error {
	return ctx.Status(fiber.StatusOK).JSON(model.SingleResponse{
		Data: model.NewResource(registry.ID(item), registry.Kind(), item.Attributes(fields), item.ItemErrors(), ""),
	})
}

// pageLink rebuilds the request URI for position. All query arguments except the page cursors are
// kept and the arguments are sorted so equal positions always yield equal links.
func pageLink(ctx *fiber.Ctx, position *listing.Position) *string {
	if position == nil {
		return nil
	}

	var args = fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	ctx.Context().QueryArgs().CopyTo(args)
	args.Del(paramPageAfter)
	args.Del(paramPageBefore)
	if position.After != "" {
		args.Set(paramPageAfter, position.After)
	}
	args.Sort(bytes.Compare)

	var link = ctx.Path()
	if args.Len() > 0 {
		link += "?" + args.String()
	}
	return &link
}
