package domain

import "time"

// DraftKind вид черновика: reserve-now или запланированное резервирование
type DraftKind int

const (
	DraftKindReserveNow DraftKind = iota
	DraftKindPlanned
)

// Draft снимок редактируемого резервирования.
// Значение копируется при передаче, изменять его может только владелец сессии.
type Draft struct {
	ChargingStationID string
	ConnectorID       int
	UserID            string
	UserFullName      string
	TagID             string
	TagVisualID       string
	Tag               *Tag // выбранный объект бейджа, nil если известен только ID
	ExpiryDate        time.Time
	FromDate          *time.Time
	ToDate            *time.Time
	ReservationID     int64
	ParentTagID       *string
	Type              ReservationType // объявленный тип, пустой = вывести из дат

	existing bool // черновик построен из уже сохранённого резервирования
}

// Schedule временные параметры черновика
type Schedule struct {
	Type       ReservationType
	ExpiryDate time.Time
	FromDate   *time.Time
	ToDate     *time.Time
}

// NewReserveNowDraft создает черновик reserve-now с предложенными значениями
func NewReserveNowDraft(chargingStationID string, connectorID int, expiryDate time.Time, reservationID int64) Draft {
	return Draft{
		ChargingStationID: chargingStationID,
		ConnectorID:       connectorID,
		ExpiryDate:        expiryDate,
		ReservationID:     reservationID,
		Type:              ReservationTypeReserveNow,
	}
}

// DraftFromReservation строит черновик из полученного от backend'а резервирования
func DraftFromReservation(r *Reservation) Draft {
	return Draft{
		ChargingStationID: r.ChargingStationID,
		ConnectorID:       r.ConnectorID,
		UserID:            r.UserID,
		TagID:             r.IDTag,
		ExpiryDate:        r.ExpiryDate,
		FromDate:          copyTime(r.FromDate),
		ToDate:            copyTime(r.ToDate),
		ReservationID:     r.ID,
		ParentTagID:       copyString(r.ParentIDTag),
		Type:              r.Type,
		existing:          true,
	}
}

// Kind определяет вид черновика по датам: наличие FromDate означает planned
func (d Draft) Kind() DraftKind {
	if d.FromDate != nil {
		return DraftKindPlanned
	}
	return DraftKindReserveNow
}

// IsExisting returns true if the draft edits an already stored reservation
func (d Draft) IsExisting() bool {
	return d.existing
}

// HasTag returns true if a tag is selected
func (d Draft) HasTag() bool {
	return d.TagID != ""
}

// WithUser возвращает черновик с новым пользователем.
// Выбор бейджа сбрасывается: бейдж принадлежит ровно одному пользователю.
func (d Draft) WithUser(user User) Draft {
	d.UserID = user.ID
	d.UserFullName = user.FullName()
	d.TagID = ""
	d.TagVisualID = ""
	d.Tag = nil
	return d
}

// WithTag возвращает черновик с выбранным бейджем
func (d Draft) WithTag(tag Tag) Draft {
	t := tag
	d.TagID = tag.ID
	d.TagVisualID = tag.VisualID
	d.Tag = &t
	return d
}

// WithSchedule возвращает черновик с новыми датами
func (d Draft) WithSchedule(s Schedule) Draft {
	d.ExpiryDate = s.ExpiryDate
	d.FromDate = copyTime(s.FromDate)
	d.ToDate = copyTime(s.ToDate)
	d.Type = s.Type
	return d
}

// EffectiveType объявленный тип или тип, выведенный из дат
func (d Draft) EffectiveType() ReservationType {
	if d.Type != "" {
		return d.Type
	}
	if d.Kind() == DraftKindPlanned {
		return ReservationTypePlanned
	}
	return ReservationTypeReserveNow
}

// Clone возвращает копию черновика без общих указателей
func (d Draft) Clone() Draft {
	d.FromDate = copyTime(d.FromDate)
	d.ToDate = copyTime(d.ToDate)
	d.ParentTagID = copyString(d.ParentTagID)
	if d.Tag != nil {
		t := *d.Tag
		d.Tag = &t
	}
	return d
}

// ToRequest формирует payload для ReservationGateway
func (d Draft) ToRequest() ReservationRequest {
	req := ReservationRequest{
		ID:                d.ReservationID,
		ChargingStationID: d.ChargingStationID,
		ConnectorID:       d.ConnectorID,
		UserID:            d.UserID,
		IDTag:             d.TagID,
		ParentIDTag:       copyString(d.ParentTagID),
		ExpiryDate:        d.ExpiryDate,
		FromDate:          copyTime(d.FromDate),
		ToDate:            copyTime(d.ToDate),
		Type:              d.Type,
		Update:            d.existing,
	}
	if !d.existing && req.Type == "" {
		req.Type = d.EffectiveType()
	}
	return req
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
