// Package amadeus is the pricing oracle client: it resolves one
// origin/destination/date triple into a live bookable flight quote, trying
// non-stop offers before connections.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/wayplan/wayplan/pkg/travel"
	"github.com/wayplan/wayplan/pkg/util"
)

const (
	defaultBaseURL    = "https://test.api.amadeus.com"
	productionBaseURL = "https://api.amadeus.com"

	tokenEndpoint  = "/v1/security/oauth2/token"
	offersEndpoint = "/v2/shopping/flight-offers"

	defaultMaxAttempts = 5
	defaultRetryWait   = 1 * time.Second
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenAuthority
	cache      *quoteCache

	maxAttempts uint64
	retryWait   time.Duration
}

// NewClient builds the client from WAYPLAN_AMADEUS_API_KEY and
// WAYPLAN_AMADEUS_API_SECRET. Missing credentials are a configuration error.
func NewClient() (*Client, error) {
	env := util.GetEnvironmentVariables()

	if env["WAYPLAN_AMADEUS_API_KEY"] == "" || env["WAYPLAN_AMADEUS_API_SECRET"] == "" {
		return nil, errors.New("WAYPLAN_AMADEUS_API_KEY and WAYPLAN_AMADEUS_API_SECRET must be set")
	}

	baseURL := defaultBaseURL
	if env["WAYPLAN_AMADEUS_ENV"] == "production" {
		baseURL = productionBaseURL
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	return &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		tokens:      NewTokenAuthority(env["WAYPLAN_AMADEUS_API_KEY"], env["WAYPLAN_AMADEUS_API_SECRET"], baseURL+tokenEndpoint, httpClient),
		cache:       newQuoteCache(),
		maxAttempts: defaultMaxAttempts,
		retryWait:   defaultRetryWait,
	}, nil
}

// Quote returns the cheapest bookable offer for the triple. It returns
// travel.ErrNoQuote when the oracle has nothing bookable and
// travel.ErrDataUnavailable when the retry budget runs out.
func (c *Client) Quote(ctx context.Context, originIATA string, destinationIATA string, date time.Time) (*travel.Quote, error) {
	if quote, err, ok := c.cache.get(ctx, originIATA, destinationIATA, date); ok {
		return quote, err
	}

	quote, err := c.search(ctx, originIATA, destinationIATA, date, true)
	if err != nil {
		log.Debug().Str("origin", originIATA).Str("destination", destinationIATA).Msg("No non-stop flight, trying with connections")
		quote, err = c.search(ctx, originIATA, destinationIATA, date, false)
	}

	if err == nil {
		c.cache.put(ctx, originIATA, destinationIATA, date, quote)
	} else if errors.Is(err, travel.ErrNoQuote) {
		c.cache.putAbsent(ctx, originIATA, destinationIATA, date)
	}

	return quote, err
}

func (c *Client) search(ctx context.Context, originIATA string, destinationIATA string, date time.Time, nonStop bool) (*travel.Quote, error) {
	requestURL := fmt.Sprintf(
		"%s%s?originLocationCode=%s&destinationLocationCode=%s&departureDate=%s&adults=1&max=1&currencyCode=GBP",
		c.baseURL, offersEndpoint, originIATA, destinationIATA, date.Format(travel.DateFormat),
	)
	if nonStop {
		requestURL += "&nonStop=true"
	}

	operation := func() (*travel.Quote, error) {
		return c.fetchOffer(ctx, requestURL)
	}

	retryPolicy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryWait), c.maxAttempts-1),
		ctx,
	)

	quote, err := backoff.RetryWithData(operation, retryPolicy)
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) || errors.Is(err, travel.ErrNoQuote) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %s -> %s: %s", travel.ErrDataUnavailable, originIATA, destinationIATA, err)
	}

	return quote, nil
}

func (c *Client) fetchOffer(ctx context.Context, requestURL string) (*travel.Quote, error) {
	bearer, err := c.tokens.Bearer(ctx)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	request.Header.Set("Authorization", "Bearer "+bearer)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusUnauthorized:
		// Token went stale mid-flight: refresh once and let the retry
		// budget cover the extra attempt.
		log.Debug().Msg("Oracle token expired, refreshing")
		c.tokens.Invalidate()
		return nil, errors.New("access token rejected")
	case response.StatusCode == http.StatusTooManyRequests || response.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("oracle returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	var offers offersResponse
	if err := json.Unmarshal(body, &offers); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("parse offers response: %w", err))
	}

	if len(offers.Data) == 0 {
		return nil, backoff.Permanent(travel.ErrNoQuote)
	}

	quote, err := offers.Data[0].toQuote()
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	return quote, nil
}

type offersResponse struct {
	Data []offer `json:"data"`
}

type offer struct {
	Price struct {
		Total string `json:"total"`
	} `json:"price"`
	Itineraries []struct {
		Duration string         `json:"duration"`
		Segments []offerSegment `json:"segments"`
	} `json:"itineraries"`
}

type offerSegment struct {
	Departure offerEndpoint `json:"departure"`
	Arrival   offerEndpoint `json:"arrival"`
}

type offerEndpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

func (o offer) toQuote() (*travel.Quote, error) {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return nil, errors.New("offer has no itinerary segments")
	}

	itinerary := o.Itineraries[0]
	segments := itinerary.Segments

	price, err := strconv.ParseFloat(o.Price.Total, 64)
	if err != nil {
		return nil, fmt.Errorf("parse offer price %q: %w", o.Price.Total, err)
	}

	durationHours, err := parseDurationHours(itinerary.Duration)
	if err != nil {
		return nil, err
	}

	quote := &travel.Quote{
		Price:         price,
		DurationHours: durationHours,
		DepartureTime: clockTime(segments[0].Departure.At),
		ArrivalTime:   clockTime(segments[len(segments)-1].Arrival.At),
		Stops:         len(segments) - 1,
	}

	for _, segment := range segments {
		quote.Segments = append(quote.Segments, travel.Segment{
			From:      segment.Departure.IATACode,
			To:        segment.Arrival.IATACode,
			Departure: clockTime(segment.Departure.At),
			Arrival:   clockTime(segment.Arrival.At),
		})
	}

	return quote, nil
}

func parseDurationHours(isoDuration string) (float64, error) {
	parsed, err := iso8601.ParseISO8601(isoDuration)
	if err != nil {
		return 0, fmt.Errorf("parse offer duration %q: %w", isoDuration, err)
	}

	return float64(parsed.TH) + float64(parsed.TM)/60, nil
}

// clockTime extracts HH:MM from the oracle's local datetime form
// (2026-05-12T15:30:00).
func clockTime(at string) string {
	parts := strings.SplitN(at, "T", 2)
	if len(parts) != 2 || len(parts[1]) < 5 {
		return ""
	}

	return parts[1][:5]
}
