package webresults

import (
	"fmt"
	"net/url"
	"precinct-results/lib/restyutil"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

type Options struct {
	// BaseUrl is the results landing page, the JSON endpoint is resolved
	// relative to it.
	BaseUrl    string `json:"base_url" yaml:"base_url"`
	ElectionID string `json:"election_id" yaml:"election_id"`
	County     string `json:"county" yaml:"county"`
	// Offices optionally names the contests to fetch, in page order.
	Offices []string `json:"offices" yaml:"offices"`
	// Party filters results server side, empty means every party.
	Party            string `json:"party" yaml:"party"`
	Retries          int    `json:"retries" yaml:"retries"`
	TimeoutSeconds   int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	BypassCloudflare bool   `json:"bypass_cloudflare" yaml:"bypass_cloudflare"`
}

type Client struct {
	http *resty.Client
	opts Options
}

// NewClient creates a client for one election, `output` may be nil.
func NewClient(opts Options, output restyutil.InstrumentOutput) (*Client, error) {
	if opts.BaseUrl == "" {
		return nil, fmt.Errorf("base_url is required")
	}
	if opts.ElectionID == "" {
		return nil, fmt.Errorf("election_id is required")
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	timeout := time.Second * 30
	if opts.TimeoutSeconds > 0 {
		timeout = time.Second * time.Duration(opts.TimeoutSeconds)
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(timeout)
	client.SetRetryCount(opts.Retries)
	client.SetRetryWaitTime(time.Second)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		return res != nil && res.StatusCode() >= 500
	})
	if opts.BypassCloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	restyutil.InstrumentClient(client, tracer, output)

	return &Client{http: client, opts: opts}, nil
}
