package pipeline

import "context"

// fold wraps dest in links from last to first, so links[0] runs first and
// each link's next is the composed remainder of the chain.
func fold(links []link, dest erased) erased {
	h := dest
	for i := len(links) - 1; i >= 0; i-- {
		h = carry(links[i], h)
	}
	return h
}

func carry(l link, next erased) erased {
	return func(ctx context.Context, in any) (any, error) {
		return l(ctx, in, next)
	}
}
