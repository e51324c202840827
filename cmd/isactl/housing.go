package main

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/utdisa/isa-portal/client"
	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/realtime"
)

func newHousingCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "housing",
		Short: "Browse and manage the housing board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newHousingListCommand(a),
		newHousingCreateCommand(a),
		newHousingDeleteCommand(a),
		newHousingWatchCommand(a),
	)
	return cmd
}

func newHousingListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List housing listings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.backend()
			if err != nil {
				return err
			}
			feed := client.NewListingsFeed(client.NewHousingService(b, a.logger()))
			state := feed.Load(cmd.Context())
			if state.Status == client.FeedFailed {
				return state.Err
			}
			return a.printJSON(state.Listings)
		},
	}
}

func loadImage(path string) (client.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return client.Image{}, err
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return client.Image{Data: data, ContentType: contentType}, nil
}

func newHousingCreateCommand(a *app) *cobra.Command {
	var (
		file   string
		photos []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a listing with one or more photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			var draft models.HousingListing
			if err := readJSONFile(file, cmd.InOrStdin(), &draft); err != nil {
				return err
			}
			images := make([]client.Image, 0, len(photos))
			for _, p := range photos {
				img, err := loadImage(p)
				if err != nil {
					return fmt.Errorf("failed to read photo %s: %w", p, err)
				}
				images = append(images, img)
			}

			b, err := a.backend()
			if err != nil {
				return err
			}
			res, err := client.NewHousingService(b, a.logger()).CreateListing(cmd.Context(), draft, images)
			if res != nil {
				for _, failed := range res.Failed() {
					fmt.Fprintf(cmd.ErrOrStderr(), "photo %s was not uploaded: %v\n", failed.Key, failed.Err)
				}
			}
			if err != nil {
				return err
			}
			return a.printJSON(res.Listing)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file with the listing fields, - for stdin")
	cmd.Flags().StringArrayVar(&photos, "photo", nil, "Photo to upload; repeat for more")
	return cmd
}

func newHousingDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <listing-id>",
		Short: "Remove one of your listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid listing id %q: %w", args[0], err)
			}
			b, err := a.backend()
			if err != nil {
				return err
			}
			if err := client.NewHousingService(b, a.logger()).DeleteListing(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Listing %s deleted.\n", id)
			return nil
		},
	}
}

// realtimeURL turns the API base URL into the websocket URL of room.
func realtimeURL(apiURL, room string) (string, error) {
	u, err := url.Parse(strings.TrimRight(apiURL, "/"))
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return u.JoinPath("realtime", "v1", room).String(), nil
}

func newHousingWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print listing changes as they happen",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := realtimeURL(a.apiURL, realtime.RoomHousingListings)
			if err != nil {
				return err
			}
			conn, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), target, nil)
			if err != nil {
				return fmt.Errorf("failed to connect to %s: %w", target, err)
			}
			defer conn.Close()

			go func() {
				<-cmd.Context().Done()
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				conn.Close()
			}()

			for {
				var msg realtime.Message
				if err := conn.ReadJSON(&msg); err != nil {
					if cmd.Context().Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
						return nil
					}
					var closeErr *websocket.CloseError
					if errors.As(err, &closeErr) {
						return fmt.Errorf("server closed the feed: %s", closeErr.Text)
					}
					return err
				}
				if err := a.printJSON(msg); err != nil {
					return err
				}
			}
		},
	}
}
