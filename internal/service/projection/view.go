package projection

import "kitchen/internal/entities"

// View — материализованное представление одного вьювера: последний полный
// снапшот бакета плюс выбранный на клиенте статус. Обновления одного вьювера
// сериализованы вызывающим (хаб доставляет их по одному каналу), поэтому
// View не потокобезопасен сам по себе.
type View struct {
	filter   Filter
	selected *entities.OrderStatusType // nil = "all"
	snapshot []entities.Order
}

func NewView(filter Filter, snapshot []entities.Order) *View {
	v := &View{filter: filter}
	v.Replace(snapshot)
	return v
}

// Replace — замена снапшота целиком. Безопасно, потому что последний статус
// каждого заказа авторитетен и идемпотентен к повторному применению.
func (v *View) Replace(snapshot []entities.Order) {
	next := make([]entities.Order, 0, len(snapshot))
	for _, orderEntity := range snapshot {
		if v.filter.Matches(orderEntity.Status) {
			next = append(next, orderEntity)
		}
	}
	sortOrders(next, v.filter.Ordering)
	v.snapshot = next
}

// Select переключает статус-вкладку. Чистая фильтрация уже имеющегося
// снапшота, без нового запроса к стору: смена бакета (active <-> history)
// делается новой подпиской, не этим методом.
func (v *View) Select(status *entities.OrderStatusType) {
	v.selected = status
}

// Orders возвращает видимое подмножество в порядке фильтра.
func (v *View) Orders() []entities.Order {
	if v.selected == nil {
		out := make([]entities.Order, len(v.snapshot))
		copy(out, v.snapshot)
		return out
	}

	out := make([]entities.Order, 0, len(v.snapshot))
	for _, orderEntity := range v.snapshot {
		if orderEntity.Status == *v.selected {
			out = append(out, orderEntity)
		}
	}
	return out
}

// Counts — бейджи по статусам, считаются от полного снапшота бакета на
// каждом обновлении, нигде не хранятся.
func (v *View) Counts() map[entities.OrderStatusType]int {
	counts := make(map[entities.OrderStatusType]int, len(v.filter.Statuses))
	for _, status := range v.filter.Statuses {
		counts[status] = 0
	}
	for _, orderEntity := range v.snapshot {
		counts[orderEntity.Status]++
	}
	return counts
}

// Total — счётчик вкладки "all", всегда равен сумме Counts.
func (v *View) Total() int {
	return len(v.snapshot)
}
