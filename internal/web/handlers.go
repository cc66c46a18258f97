package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"tubescout/internal/app"
	"tubescout/internal/app/model"
	"tubescout/internal/export"
	"tubescout/internal/llm"
	"tubescout/internal/table"
)

type tableResponse struct {
	Rows    []table.Record `json:"rows"`
	Series  export.Series  `json:"series"`
	Intents []model.Intent `json:"intents,omitempty"`
	Message string         `json:"message,omitempty"`
}

type channelResponse struct {
	Summary      model.ChannelSummary `json:"summary"`
	TopVideos    []table.Record       `json:"top_videos"`
	Uploads      []table.Record       `json:"uploads"`
	TotalUploads int                  `json:"total_uploads"`
	Page         int                  `json:"page"`
	PageCount    int                  `json:"page_count"`
	Series       export.Series        `json:"series"`
	Message      string               `json:"message,omitempty"`
}

type ideasResponse struct {
	tableResponse
	Categories []table.Record `json:"categories"`
}

type suggestRequest struct {
	Words []string `json:"words"`
	Count int      `json:"count"`
}

type suggestResponse struct {
	Ideas []llm.Idea `json:"ideas"`
}

func (s *Server) trending(c echo.Context) error {
	var p app.TrendingParams
	if err := echo.QueryParamsBinder(c).
		String("region", &p.Region).
		String("category", &p.Category).
		String("keyword", &p.Keyword).
		String("sort", &p.SortBy).
		Int("max", &p.Max).
		BindError(); err != nil {
		return badRequest(err)
	}

	res, err := s.svc.Trending(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return s.videoTable(c, res)
}

func (s *Server) search(c echo.Context) error {
	var p app.SearchParams
	if err := echo.QueryParamsBinder(c).
		String("q", &p.Query).
		String("order", &p.Order).
		String("region", &p.Region).
		String("sort", &p.SortBy).
		Int("max", &p.Max).
		Int("days", &p.PublishedWithinDays).
		BindError(); err != nil {
		return badRequest(err)
	}

	res, err := s.svc.Search(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return s.videoTable(c, res)
}

func (s *Server) channel(c echo.Context) error {
	p := app.ChannelParams{ID: c.Param("id")}
	if err := echo.QueryParamsBinder(c).
		Int("page", &p.Page).
		Int("page_size", &p.PageSize).
		String("sort", &p.SortBy).
		BindError(); err != nil {
		return badRequest(err)
	}

	res, err := s.svc.Channel(c.Request().Context(), p)
	if err != nil {
		return err
	}

	format, err := formatParam(c)
	if err != nil {
		return err
	}
	if format != "" {
		return s.download(c, "channel-uploads", format, res.Uploads)
	}

	return c.JSON(http.StatusOK, channelResponse{
		Summary:      res.Summary,
		TopVideos:    table.Records(res.TopVideos),
		Uploads:      table.Records(res.Uploads),
		TotalUploads: res.TotalUploads,
		Page:         res.Page,
		PageCount:    res.PageCount,
		Series:       res.Series,
		Message:      res.Message,
	})
}

func (s *Server) niche(c echo.Context) error {
	var p app.NicheParams
	if err := echo.QueryParamsBinder(c).
		String("keyword", &p.Keyword).
		Uint64("max_subscribers", &p.MaxSubscribers).
		Uint64("max_views", &p.MaxTotalViews).
		Int("max_age_months", &p.MaxAgeMonths).
		Int("cap", &p.ResultCap).
		BindError(); err != nil {
		return badRequest(err)
	}

	res, err := s.svc.Niche(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return s.records(c, "niche", res.Records(), tableResponse{
		Rows:    res.Records(),
		Series:  res.Series,
		Intents: res.Intents,
		Message: res.Message,
	})
}

func (s *Server) ideas(c echo.Context) error {
	var p app.IdeasParams
	if err := echo.QueryParamsBinder(c).
		String("region", &p.Region).
		String("category", &p.Category).
		Int("top", &p.TopN).
		BindError(); err != nil {
		return badRequest(err)
	}

	res, err := s.svc.Ideas(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return s.records(c, "ideas", res.Records(), ideasResponse{
		tableResponse: tableResponse{
			Rows:    res.Records(),
			Series:  res.Series,
			Intents: res.Intents,
			Message: res.Message,
		},
		Categories: res.CategoryRecords(),
	})
}

func (s *Server) suggest(c echo.Context) error {
	var req suggestRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	out, err := s.svc.SuggestIdeas(c.Request().Context(), req.Words, req.Count)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, suggestResponse{Ideas: out})
}

func (s *Server) categories(c echo.Context) error {
	out, err := s.svc.Categories(c.Request().Context(), c.QueryParam("region"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// open follows an intent emitted by a previous response.
func (s *Server) open(c echo.Context) error {
	var intent model.Intent
	if err := c.Bind(&intent); err != nil {
		return err
	}

	res, err := s.svc.Open(c.Request().Context(), intent)
	if err != nil {
		return err
	}

	switch r := res.(type) {
	case *model.TableResult:
		return c.JSON(http.StatusOK, tableFrom(r))
	case *model.NicheResult:
		return c.JSON(http.StatusOK, tableResponse{Rows: r.Records(), Series: r.Series, Intents: r.Intents, Message: r.Message})
	case *model.IdeasResult:
		return c.JSON(http.StatusOK, ideasResponse{
			tableResponse: tableResponse{Rows: r.Records(), Series: r.Series, Intents: r.Intents, Message: r.Message},
			Categories:    r.CategoryRecords(),
		})
	case *model.ChannelResult:
		return c.JSON(http.StatusOK, channelResponse{
			Summary:      r.Summary,
			TopVideos:    table.Records(r.TopVideos),
			Uploads:      table.Records(r.Uploads),
			TotalUploads: r.TotalUploads,
			Page:         r.Page,
			PageCount:    r.PageCount,
			Series:       r.Series,
			Message:      r.Message,
		})
	default:
		return fmt.Errorf("unexpected result %T", res)
	}
}

func tableFrom(res *model.TableResult) tableResponse {
	return tableResponse{
		Rows:    res.Records(),
		Series:  res.Series,
		Message: res.Message,
	}
}

func (s *Server) videoTable(c echo.Context, res *model.TableResult) error {
	format, err := formatParam(c)
	if err != nil {
		return err
	}
	if format != "" {
		return s.download(c, res.Kind, format, res.Rows)
	}
	return c.JSON(http.StatusOK, tableFrom(res))
}

// records answers with body, or with a file download when a format is asked
// for.
func (s *Server) records(c echo.Context, kind string, records []table.Record, body any) error {
	format, err := formatParam(c)
	if err != nil {
		return err
	}
	switch format {
	case "":
		return c.JSON(http.StatusOK, body)
	case export.FormatRSS:
		return badRequest(fmt.Errorf("rss is only available for video tables"))
	}

	var buf bytes.Buffer
	if err := writeRecords(&buf, format, records); err != nil {
		return err
	}
	return s.attach(c, kind, format, buf.Bytes())
}

func (s *Server) download(c echo.Context, kind string, format export.Format, rows []table.VideoRecord) error {
	var buf bytes.Buffer
	if format == export.FormatRSS {
		info := export.FeedInfo{
			Title:       "tubescout " + kind,
			Description: fmt.Sprintf("%d videos", len(rows)),
			Link:        "https://www.youtube.com/",
		}
		if err := export.RSS(&buf, info, rows, s.now()); err != nil {
			return err
		}
	} else if err := writeRecords(&buf, format, table.Records(rows)); err != nil {
		return err
	}
	return s.attach(c, kind, format, buf.Bytes())
}

func (s *Server) attach(c echo.Context, kind string, format export.Format, data []byte) error {
	name := export.FileName(kind, format, s.now())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, format.ContentType(), data)
}

func writeRecords(buf *bytes.Buffer, format export.Format, records []table.Record) error {
	if format == export.FormatCSV {
		return export.CSV(buf, records)
	}
	return export.JSON(buf, records)
}

func formatParam(c echo.Context) (export.Format, error) {
	raw := c.QueryParam("format")
	if raw == "" {
		return "", nil
	}
	f, err := export.ParseFormat(raw)
	if err != nil {
		return "", badRequest(err)
	}
	return f, nil
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
