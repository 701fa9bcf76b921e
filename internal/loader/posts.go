package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/models"
)

// postPayload mirrors the Reddit collaborator JSON contract.
type postPayload struct {
	ID          *string  `json:"id"`
	Time        *string  `json:"time"`
	URL         string   `json:"url"`
	Title       *string  `json:"title"`
	Upvote      *int     `json:"upvote"`
	NumComments *int     `json:"num_comments"`
	Text        string   `json:"text"`
	UpvoteRatio *float64 `json:"upvote_ratio"`
}

// LoadPosts reads an already-fetched batch of Reddit posts from a JSON
// array or an archived CSV, chosen by file extension.
func LoadPosts(path string) ([]models.RawPost, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open posts file: %w", err)
	}
	defer file.Close()

	var posts []models.RawPost
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		posts, err = decodePostsCSV(file)
	default:
		posts, err = decodePostsJSON(file)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("loaded reddit posts",
		zap.String("path", path),
		zap.Int("count", len(posts)),
	)

	return posts, nil
}

func decodePostsJSON(r io.Reader) ([]models.RawPost, error) {
	var payload []postPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode posts JSON: %w", err)
	}

	posts := make([]models.RawPost, 0, len(payload))
	for _, p := range payload {
		switch {
		case p.ID == nil:
			return nil, &models.SchemaError{Field: "id"}
		case p.Time == nil:
			return nil, &models.SchemaError{Field: "time"}
		case p.Title == nil:
			return nil, &models.SchemaError{Field: "title"}
		case p.Upvote == nil:
			return nil, &models.SchemaError{Field: "upvote"}
		case p.NumComments == nil:
			return nil, &models.SchemaError{Field: "num_comments"}
		}

		ts, err := parseTimestamp(*p.Time)
		if err != nil {
			return nil, &models.SchemaError{Field: "time"}
		}

		posts = append(posts, models.RawPost{
			ID:          *p.ID,
			Timestamp:   ts,
			URL:         p.URL,
			Title:       *p.Title,
			Score:       *p.Upvote,
			NumComments: *p.NumComments,
			Text:        p.Text,
			UpvoteRatio: p.UpvoteRatio,
		})
	}
	return posts, nil
}

// postColumns are the archive CSV columns the aggregation needs.
var postColumns = []string{"ID", "Timestamp", "Title", "Score", "Comments", "Text", "Upvote Ratio"}

func decodePostsCSV(r io.Reader) ([]models.RawPost, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read posts CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range postColumns {
		if _, ok := index[name]; !ok {
			return nil, &models.SchemaError{Field: name}
		}
	}

	var posts []models.RawPost
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read posts CSV record: %w", err)
		}

		ts, err := parseTimestamp(record[index["Timestamp"]])
		if err != nil {
			return nil, &models.SchemaError{Field: "Timestamp"}
		}
		score, err := strconv.Atoi(record[index["Score"]])
		if err != nil {
			return nil, &models.SchemaError{Field: "Score"}
		}
		comments, err := strconv.Atoi(record[index["Comments"]])
		if err != nil {
			return nil, &models.SchemaError{Field: "Comments"}
		}

		var ratio *float64
		if raw := strings.TrimSpace(record[index["Upvote Ratio"]]); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &models.SchemaError{Field: "Upvote Ratio"}
			}
			ratio = &v
		}

		post := models.RawPost{
			ID:          record[index["ID"]],
			Timestamp:   ts,
			Title:       record[index["Title"]],
			Score:       score,
			NumComments: comments,
			Text:        record[index["Text"]],
			UpvoteRatio: ratio,
		}
		if i, ok := index["URL"]; ok {
			post.URL = record[i]
		}
		posts = append(posts, post)
	}
	return posts, nil
}
