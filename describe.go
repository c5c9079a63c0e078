package diffcard

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FillDescriptions returns a copy of card in which every comparison without
// a description gets one from d. Existing descriptions are kept. At most
// limit calls to d run at once; limit <= 0 means no limit.
func FillDescriptions(ctx context.Context, card *Card, d Describer, limit int) (*Card, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}
	out := &Card{
		Comparisons: append([]Comparison(nil), card.Comparisons...),
		Link:        card.Link,
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range out.Comparisons {
		c := &out.Comparisons[i]
		if strings.TrimSpace(c.Old.Description) != "" {
			continue
		}
		g.Go(func() error {
			desc, err := d.Describe(ctx, *c)
			if err != nil {
				return fmt.Errorf("describe %s: %w", c.Key(), err)
			}
			c.Old.Description = desc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
