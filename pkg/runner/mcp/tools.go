package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/diary/pkg/entry"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListDaysTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerAddEntryTool(srv, svc)
	registerUpdateEntryTool(srv, svc)
	registerAddSymptomTool(srv, svc)
	registerSetTagTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerLinkEntriesTool(srv, svc)
	registerDissolveLinkTool(srv, svc)
	registerReportTool(srv, svc)
	registerShareLinkTool(srv, svc)
}

func tagNames() []string {
	tags := entry.Tags()
	out := make([]string, 0, len(tags)+1)
	for _, t := range tags {
		out = append(out, string(t))
	}
	return out
}

func registerListDaysTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_days",
		mcp.WithDescription("List diary entries grouped by day, oldest first, with their link groups."),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text matched against food, comment, symptoms and date."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries; 0 returns all."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Search string `json:"search"`
			Limit  int    `json:"limit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		days, err := svc.ListDays(ctx, args.Search, args.Limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"days":  days,
			"count": len(days),
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by id or unique id prefix."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_entry",
		mcp.WithDescription("Log a meal, stool, supplement or symptom entry dated now."),
		mcp.WithString("food",
			mcp.Description(`What was eaten; start with "Stuhl" to log a stool.`),
		),
		mcp.WithArray("symptoms",
			mcp.Description(`Symptoms written as text[@onset][#strength], e.g. "Bauchschmerzen@30m#2".`),
			mcp.WithStringItems(),
		),
		mcp.WithString("comment",
			mcp.Description("Free-text comment."),
		),
		mcp.WithString("portion",
			mcp.Description("S, M, L or custom:<grams>."),
		),
		mcp.WithString("tag",
			mcp.Description("Pin a tag instead of the derived one."),
			mcp.Enum(tagNames()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Food     string   `json:"food"`
			Symptoms []string `json:"symptoms"`
			Comment  string   `json:"comment"`
			Portion  string   `json:"portion"`
			Tag      string   `json:"tag"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddEntry(ctx, AddEntryOptions{
			Food:     args.Food,
			Symptoms: args.Symptoms,
			Comment:  args.Comment,
			Portion:  args.Portion,
			Tag:      args.Tag,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_entry",
		mcp.WithDescription("Change food, comment, date or portion of an entry. Omitted fields stay as they are."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier."),
		),
		mcp.WithString("food",
			mcp.Description("New food text."),
		),
		mcp.WithString("comment",
			mcp.Description("New comment."),
		),
		mcp.WithString("date",
			mcp.Description("New date as DD.MM.YYYY HH:MM or YYYY-MM-DDTHH:MM. Moving a linked entry to another day unlinks it."),
		),
		mcp.WithString("portion",
			mcp.Description("S, M, L, custom:<grams>, or empty to clear."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID      string  `json:"id"`
			Food    *string `json:"food"`
			Comment *string `json:"comment"`
			Date    *string `json:"date"`
			Portion *string `json:"portion"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.UpdateEntry(ctx, UpdateEntryOptions{
			ID:      args.ID,
			Food:    args.Food,
			Comment: args.Comment,
			Date:    args.Date,
			Portion: args.Portion,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddSymptomTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_symptom",
		mcp.WithDescription("Append a symptom to an entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier."),
		),
		mcp.WithString("symptom",
			mcp.Required(),
			mcp.Description(`Symptom as text[@onset][#strength], e.g. "Übelkeit@1h#3".`),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		symptom, err := request.RequireString("symptom")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.AddSymptom(ctx, id, symptom)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetTagTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_tag",
		mcp.WithDescription(`Pin the tag of an entry, or "auto" to derive it from food and symptoms again.`),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier."),
		),
		mcp.WithString("tag",
			mcp.Required(),
			mcp.Description("Tag to pin."),
			mcp.Enum(append(tagNames(), "auto")...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tag, err := request.RequireString("tag")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetTag(ctx, id, tag)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry. A pair it belonged to is dissolved."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteEntry(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": dto})
	})
}

func registerLinkEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"link_entries",
		mcp.WithDescription("Link two entries of the same day into one group."),
		mcp.WithString("first",
			mcp.Required(),
			mcp.Description("Entry that starts or already owns the group."),
		),
		mcp.WithString("second",
			mcp.Required(),
			mcp.Description("Entry that joins the group."),
		),
		mcp.WithNumber("join",
			mcp.Description("Existing group id of that day to join when first is not linked yet; 0 starts a new group."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			First  string `json:"first"`
			Second string `json:"second"`
			Join   int    `json:"join"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		res, err := svc.LinkEntries(ctx, args.First, args.Second, args.Join)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerDissolveLinkTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"dissolve_link",
		mcp.WithDescription("Remove the whole link group an entry belongs to."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Any member of the group."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ids, err := svc.DissolveLink(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"unlinked": ids})
	})
}

func registerReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"report",
		mcp.WithDescription("Summarise entries and symptom frequencies over a recent window."),
		mcp.WithString("window",
			mcp.Description(`Window ending now, e.g. "3d", "1w" or "2w". Defaults to one week.`),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Window string `json:"window"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		r, err := svc.Report(ctx, args.Window)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(r)
	})
}

func registerShareLinkTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"share_link",
		mcp.WithDescription("Encode the whole diary into a link that can be imported elsewhere."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		link, err := svc.ShareLink(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(link), nil
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
