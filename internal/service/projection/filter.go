package projection

import (
	"sort"
	"strings"

	"kitchen/internal/entities"
	"kitchen/internal/service/order"
)

type Ordering string

const (
	// OldestFirst — очередь кухни, FIFO по created_at.
	OldestFirst Ordering = "oldest_first"
	// NewestFirst — история, свежие заказы сверху.
	NewestFirst Ordering = "newest_first"
)

// Filter — предикат подписки по статусам. Активный и терминальный бакеты
// никогда не запрашиваются вместе.
type Filter struct {
	Statuses []entities.OrderStatusType
	Ordering Ordering
}

func ActiveFilter() Filter {
	return Filter{
		Statuses: order.ActiveStatuses(),
		Ordering: OldestFirst,
	}
}

func HistoryFilter() Filter {
	return Filter{
		Statuses: order.TerminalStatuses(),
		Ordering: NewestFirst,
	}
}

func (f Filter) Matches(status entities.OrderStatusType) bool {
	for _, s := range f.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Key идентифицирует фильтр, чтобы хаб запрашивал стор один раз на каждый
// различный фильтр, а не на каждого вьювера.
func (f Filter) Key() string {
	statuses := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		statuses = append(statuses, s.String())
	}
	sort.Strings(statuses)
	return string(f.Ordering) + "|" + strings.Join(statuses, ",")
}

func sortOrders(orders []entities.Order, ordering Ordering) {
	sort.SliceStable(orders, func(i, j int) bool {
		if ordering == NewestFirst {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}
